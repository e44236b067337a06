package splice

// SpliceComponent is one elementary-stream component of a component-mode
// splice_insert.
type SpliceComponent struct {
	ComponentTag int   `json:"ComponentTag"`
	SpliceTime   int64 `json:"SpliceTime"`
}

// SpliceInsert signals a splice point in the stream. Field names follow the
// analyzer's JSON output.
type SpliceInsert struct {
	SpliceEventID              int               `json:"EventId"`
	SpliceEventCancelIndicator bool              `json:"EventCancelIdr"`
	OutOfNetworkIndicator      bool              `json:"OutOfNetworkIdr"`
	ProgramSpliceFlag          bool              `json:"ProgramSpliceFlag"`
	DurationFlag               bool              `json:"DurationFlag"`
	SpliceImmediateFlag        bool              `json:"SpliceImmediateFlag"`
	SpliceTime                 *int64            `json:"SpliceTime"`
	Components                 []SpliceComponent `json:"Components"`
	BreakDuration              *BreakDuration    `json:"BreakDuration"`
	UniqueProgramID            int               `json:"UniqueProgramId"`
	AvailNum                   int               `json:"AvailNum"`
	AvailsExpected             int               `json:"AvailsExpected"`
}

func (cmd *SpliceInsert) Type() uint32 { return SpliceInsertType }

func (cmd *SpliceInsert) spliceTime() (int64, bool) {
	// A cancelled event has no splice point.
	if cmd.SpliceEventCancelIndicator || cmd.SpliceTime == nil {
		return 0, false
	}
	// Component times are not consulted: a program-level -1 is immediate
	// whatever the components carry.
	return *cmd.SpliceTime, true
}
