package splice

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zsiec/preroll/internal/clock"
)

// ErrNoPacketIndex is returned when a record has no PktCnt field.
var ErrNoPacketIndex = errors.New("splice: record has no packet index")

// Record is one decoded SCTE-35 splice_info_section together with the index
// of the transport-stream packet that carried it.
type Record struct {
	PacketIndex   int64
	PTSAdjustment uint64
	CWIndex       int
	Tier          int
	CommandLength int
	CommandType   string

	// Command is nil when the analyzer wrote no splice command.
	Command Command
}

type recordJSON struct {
	PktCnt           *int64          `json:"PktCnt"`
	PtsAdjustment    uint64          `json:"PtsAdjustment"`
	CwIdx            int             `json:"CwIdx"`
	Tier             int             `json:"Tier"`
	SpliceCmdLen     int             `json:"SpliceCmdLen"`
	SpliceCmdTypeStr string          `json:"SpliceCmdTypeStr"`
	SpliceCmd        json.RawMessage `json:"SpliceCmd"`
}

// SpliceTime returns the PTS targeted by the record's command, or
// ImmediateSpliceTime for an immediate splice. ok is false when the record
// has no decodable splice command.
func (r *Record) SpliceTime() (pts int64, ok bool) {
	if r.Command == nil {
		return 0, false
	}
	return r.Command.spliceTime()
}

// AdjustedSpliceTime is SpliceTime with the section's pts_adjustment applied
// modulo 2^33. Immediate splices are returned unchanged.
func (r *Record) AdjustedSpliceTime() (pts int64, ok bool) {
	pts, ok = r.SpliceTime()
	if !ok || pts == ImmediateSpliceTime {
		return pts, ok
	}
	return int64(clock.AddPTS(uint64(pts), r.PTSAdjustment)), true
}

// Decode reads a single splice record from r.
func Decode(r io.Reader) (*Record, error) {
	var raw recordJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("splice: decoding record: %w", err)
	}
	if raw.PktCnt == nil {
		return nil, ErrNoPacketIndex
	}

	rec := &Record{
		PacketIndex:   *raw.PktCnt,
		PTSAdjustment: raw.PtsAdjustment,
		CWIndex:       raw.CwIdx,
		Tier:          raw.Tier,
		CommandLength: raw.SpliceCmdLen,
		CommandType:   raw.SpliceCmdTypeStr,
	}

	data := bytes.TrimSpace(raw.SpliceCmd)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return rec, nil
	}
	cmd, err := decodeCommand(raw.SpliceCmdTypeStr, data)
	if err != nil {
		return nil, err
	}
	rec.Command = cmd
	return rec, nil
}

// Load reads the splice record stored at path.
func Load(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("splice: %w", err)
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}
