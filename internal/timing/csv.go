package timing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Columns names the CSV header cells holding each field of a Row.
type Columns struct {
	PacketIndex           string `yaml:"packet_index"`
	ReferenceClock        string `yaml:"reference_clock"`
	PresentationTimestamp string `yaml:"presentation_timestamp"`
}

// DefaultColumns returns the header names used by the analyzer's video CSV.
func DefaultColumns() Columns {
	return Columns{
		PacketIndex:           "pktCnt",
		ReferenceClock:        "pcr",
		PresentationTimestamp: "pts",
	}
}

// Load reads the timing table stored at path.
func Load(path string, cols Columns) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("timing: %w", err)
	}
	defer f.Close()

	t, err := Read(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a CSV timing table. The first record is the header; column
// order is free and columns other than the three named in cols are ignored.
// Rows need not be sorted. A row with an empty reference clock is dropped and
// counted by [Table.Skipped]; an empty, "-" or NaN presentation timestamp
// marks a packet without PTS.
func Read(r io.Reader, cols Columns) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("timing: empty table")
	}
	if err != nil {
		return nil, fmt.Errorf("timing: reading header: %w", err)
	}

	idxCol, pcrCol, ptsCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case cols.PacketIndex:
			idxCol = i
		case cols.ReferenceClock:
			pcrCol = i
		case cols.PresentationTimestamp:
			ptsCol = i
		}
	}
	for _, c := range []struct {
		name string
		pos  int
	}{
		{cols.PacketIndex, idxCol},
		{cols.ReferenceClock, pcrCol},
		{cols.PresentationTimestamp, ptsCol},
	} {
		if c.pos < 0 {
			return nil, fmt.Errorf("timing: missing column %q", c.name)
		}
	}

	var (
		rows    []Row
		skipped int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("timing: %w", err)
		}
		line, _ := cr.FieldPos(0)

		idxCell := cell(rec, idxCol)
		if idxCell == "" && isBlank(rec) {
			continue
		}
		idx, err := parseIndex(idxCell)
		if err != nil {
			return nil, fmt.Errorf("timing: line %d, column %q: %w", line, cols.PacketIndex, err)
		}

		pcrCell := cell(rec, pcrCol)
		if isMissing(pcrCell) {
			skipped++
			continue
		}
		pcr, err := strconv.ParseFloat(pcrCell, 64)
		if err != nil {
			return nil, fmt.Errorf("timing: line %d, column %q: %w", line, cols.ReferenceClock, err)
		}

		row := Row{PacketIndex: idx, ReferenceClock: pcr}
		if ptsCell := cell(rec, ptsCol); !isMissing(ptsCell) {
			pts, err := strconv.ParseFloat(ptsCell, 64)
			if err != nil {
				return nil, fmt.Errorf("timing: line %d, column %q: %w", line, cols.PresentationTimestamp, err)
			}
			row.PresentationTimestamp = pts
			row.HasPTS = !math.IsNaN(pts)
		}
		rows = append(rows, row)
	}

	t := NewTable(rows)
	t.skipped = skipped
	return t, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func isMissing(v string) bool {
	return v == "" || v == "-" || strings.EqualFold(v, "nan")
}

// parseIndex accepts integral values written either as integers or, as some
// dataframe exports do, as floats with a zero fraction.
func parseIndex(v string) (int64, error) {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("packet index %q is not an integer", v)
	}
	return int64(f), nil
}
