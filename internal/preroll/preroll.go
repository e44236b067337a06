// Package preroll estimates the lead time between the arrival of an SCTE-35
// splice message and the presentation of the video frame it targets.
//
// The splice message's own packet carries no clock sample, so its arrival is
// estimated by linear interpolation of the reference clock between the
// nearest timed packets on either side. The target instant is the reference
// clock of the frame whose PTS equals the splice time, or of the next timed
// packet for an immediate splice. Results are in reference clock ticks.
package preroll

import (
	"github.com/zsiec/preroll/internal/splice"
	"github.com/zsiec/preroll/internal/timing"
)

// Estimate is the breakdown of one pre-roll computation.
type Estimate struct {
	// Floor and Ceiling are the timing rows bracketing the splice packet.
	Floor   timing.Row
	Ceiling timing.Row

	// SpliceTime is the PTS the command targets after any adjustment, or
	// splice.ImmediateSpliceTime.
	SpliceTime int64
	Immediate  bool

	MessageClock float64
	TargetClock  float64

	// Preroll is TargetClock - MessageClock. Negative when the message
	// arrived after its splice point.
	Preroll float64
}

// Estimator computes pre-roll for splice records. The zero value follows the
// analyzer tooling exactly and ignores pts_adjustment.
type Estimator struct {
	// ApplyPTSAdjustment adds the section's pts_adjustment (mod 2^33) to the
	// splice time before looking it up.
	ApplyPTSAdjustment bool
}

// EstimatePreroll returns the pre-roll of rec against tbl using the zero
// Estimator.
func EstimatePreroll(rec *splice.Record, tbl *timing.Table) (float64, error) {
	est, err := Estimator{}.Estimate(rec, tbl)
	if err != nil {
		return 0, err
	}
	return est.Preroll, nil
}

// Estimate computes the pre-roll of rec against tbl. Failures are returned
// as *EstimationError wrapping ErrMissingSpliceCommand, ErrOutOfRange or
// ErrTargetNotFound. Estimate has no side effects and may be called
// concurrently on a shared table.
func (e Estimator) Estimate(rec *splice.Record, tbl *timing.Table) (Estimate, error) {
	var (
		spliceTime int64
		ok         bool
	)
	if e.ApplyPTSAdjustment {
		spliceTime, ok = rec.AdjustedSpliceTime()
	} else {
		spliceTime, ok = rec.SpliceTime()
	}
	if !ok {
		return Estimate{}, &EstimationError{PacketIndex: rec.PacketIndex, Err: ErrMissingSpliceCommand}
	}
	fail := func(err error) (Estimate, error) {
		return Estimate{}, &EstimationError{PacketIndex: rec.PacketIndex, SpliceTime: spliceTime, Err: err}
	}

	floor, ceil, ok := tbl.Bracket(rec.PacketIndex)
	if !ok {
		return fail(ErrOutOfRange)
	}

	slope := (ceil.ReferenceClock - floor.ReferenceClock) / float64(ceil.PacketIndex-floor.PacketIndex)
	messageClock := floor.ReferenceClock + slope*float64(rec.PacketIndex-floor.PacketIndex)

	est := Estimate{
		Floor:        floor,
		Ceiling:      ceil,
		SpliceTime:   spliceTime,
		MessageClock: messageClock,
	}

	if spliceTime == splice.ImmediateSpliceTime {
		est.Immediate = true
		est.TargetClock = ceil.ReferenceClock
	} else {
		target, ok := tbl.LookupPTS(float64(spliceTime))
		if !ok {
			return fail(ErrTargetNotFound)
		}
		est.TargetClock = target.ReferenceClock
	}

	est.Preroll = est.TargetClock - est.MessageClock
	return est, nil
}
