package splice

// SpliceNull is a no-op command used as a heartbeat.
type SpliceNull struct{}

func (cmd *SpliceNull) Type() uint32 { return SpliceNullType }

func (cmd *SpliceNull) spliceTime() (int64, bool) { return 0, false }
