package splice

// TimeSignal provides a time-synchronized data delivery mechanism.
type TimeSignal struct {
	SpliceTime *int64 `json:"SpliceTime"`
}

func (cmd *TimeSignal) Type() uint32 { return TimeSignalType }

func (cmd *TimeSignal) spliceTime() (int64, bool) {
	if cmd.SpliceTime == nil {
		return 0, false
	}
	return *cmd.SpliceTime, true
}
