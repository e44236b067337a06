// Package clock holds the MPEG-TS clock units shared by the timing table and
// the pre-roll estimator. Reference clock (PCR) values are counted in ticks of
// the 27 MHz system clock; presentation timestamps use the 90 kHz clock.
package clock

const (
	// Rate27MHz is the system clock frequency in Hz.
	Rate27MHz = 27_000_000

	// TicksPer90kHz converts one 90 kHz PTS unit into 27 MHz ticks.
	TicksPer90kHz = 300

	// TicksPerMillisecond is the number of 27 MHz ticks in one millisecond.
	TicksPerMillisecond = Rate27MHz / 1000

	// PTSWrap is the modulus of the 33-bit PTS counter.
	PTSWrap uint64 = 1 << 33
)

// Milliseconds converts a tick count at rateHz into whole milliseconds,
// truncating toward zero. A non-positive rate falls back to Rate27MHz.
func Milliseconds(ticks float64, rateHz int64) int64 {
	if rateHz <= 0 || rateHz == Rate27MHz {
		return int64(ticks / TicksPerMillisecond)
	}
	return int64(ticks / (float64(rateHz) / 1000))
}

// PTSToTicks converts a 90 kHz timestamp into 27 MHz ticks.
func PTSToTicks(pts int64) int64 {
	return pts * TicksPer90kHz
}

// AddPTS adds two 33-bit timestamps with wraparound, as required when
// applying an SCTE-35 pts_adjustment to a splice time.
func AddPTS(a, b uint64) uint64 {
	return (a + b) % PTSWrap
}
