// Package splice loads decoded SCTE-35 splice records written by the
// transport-stream analyzer, one JSON document per splice_info_section.
// The binary section has already been parsed upstream; this package only
// models the decoded command types and exposes the splice time each one
// targets.
package splice

import (
	"encoding/json"
	"fmt"
)

// ImmediateSpliceTime is the sentinel splice time the analyzer writes when a
// command carries no explicit PTS. The splice applies at the next opportunity.
const ImmediateSpliceTime int64 = -1

const (
	SpliceNullType           uint32 = 0x00
	SpliceScheduleType       uint32 = 0x04
	SpliceInsertType         uint32 = 0x05
	TimeSignalType           uint32 = 0x06
	BandwidthReservationType uint32 = 0x07
	PrivateCommandType       uint32 = 0xFF
)

var commandTypes = map[string]uint32{
	"splice_null":           SpliceNullType,
	"splice_schedule":       SpliceScheduleType,
	"splice_insert":         SpliceInsertType,
	"time_signal":           TimeSignalType,
	"bandwidth_reservation": BandwidthReservationType,
	"private_command":       PrivateCommandType,
}

// Command is the interface for decoded splice command types.
type Command interface {
	Type() uint32
	// spliceTime reports the PTS the command targets. ok is false when the
	// command has no splice time field at all.
	spliceTime() (pts int64, ok bool)
}

// BreakDuration specifies the duration of a commercial break.
type BreakDuration struct {
	AutoReturn bool  `json:"AutoReturn"`
	Duration   int64 `json:"Duration"`
}

// SpliceSchedule announces splice events in UTC wall-clock time. It has no
// PTS target and therefore cannot be correlated with the timing table.
type SpliceSchedule struct {
	SpliceCnt    int            `json:"SpliceCnt"`
	SpliceEvents []SpliceInsert `json:"SpliceEvents"`
}

func (cmd *SpliceSchedule) Type() uint32 { return SpliceScheduleType }

func (cmd *SpliceSchedule) spliceTime() (int64, bool) { return 0, false }

// BandwidthReservation is a placeholder command with no payload.
type BandwidthReservation struct{}

func (cmd *BandwidthReservation) Type() uint32 { return BandwidthReservationType }

func (cmd *BandwidthReservation) spliceTime() (int64, bool) { return 0, false }

// PrivateCommand carries opaque vendor bytes.
type PrivateCommand struct {
	Identifier   string `json:"Identifier"`
	PrivateBytes string `json:"PrivateBytes"`
}

func (cmd *PrivateCommand) Type() uint32 { return PrivateCommandType }

func (cmd *PrivateCommand) spliceTime() (int64, bool) { return 0, false }

// unknownCommand holds a command whose type string is not recognised. Only
// its SpliceTime key, if any, is retained.
type unknownCommand struct {
	typ        uint32
	SpliceTime *int64 `json:"SpliceTime"`
}

func (cmd *unknownCommand) Type() uint32 { return cmd.typ }

func (cmd *unknownCommand) spliceTime() (int64, bool) {
	if cmd.SpliceTime == nil {
		return 0, false
	}
	return *cmd.SpliceTime, true
}

// CommandName returns the analyzer's type string for a command type code.
func CommandName(t uint32) string {
	switch t {
	case SpliceNullType:
		return "splice_null"
	case SpliceScheduleType:
		return "splice_schedule"
	case SpliceInsertType:
		return "splice_insert"
	case TimeSignalType:
		return "time_signal"
	case BandwidthReservationType:
		return "bandwidth_reservation"
	case PrivateCommandType:
		return "private_command"
	default:
		return "Unknown"
	}
}

func decodeCommand(typeStr string, data json.RawMessage) (Command, error) {
	var cmd Command
	typ, known := commandTypes[typeStr]
	if !known {
		// Unknown type string: keep a SpliceTime if one is present.
		typ = 0xFE
	}
	switch typ {
	case SpliceNullType:
		cmd = &SpliceNull{}
	case SpliceScheduleType:
		cmd = &SpliceSchedule{}
	case SpliceInsertType:
		cmd = &SpliceInsert{}
	case TimeSignalType:
		cmd = &TimeSignal{}
	case BandwidthReservationType:
		cmd = &BandwidthReservation{}
	case PrivateCommandType:
		cmd = &PrivateCommand{}
	default:
		cmd = &unknownCommand{typ: typ}
	}
	if err := json.Unmarshal(data, cmd); err != nil {
		return nil, fmt.Errorf("splice: decoding %q command: %w", typeStr, err)
	}
	return cmd, nil
}
