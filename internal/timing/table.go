// Package timing holds the per-packet video timing table written by the
// transport-stream analyzer: for each observed packet of one video PID, the
// packet index, the reference clock (PCR, 27 MHz ticks) and, where the packet
// starts a PES, its presentation timestamp.
//
// A [Table] is immutable once built and may be shared by concurrent readers.
package timing

import (
	"slices"
	"sort"
)

// Row is one observed packet of the video stream.
type Row struct {
	PacketIndex    int64
	ReferenceClock float64

	// PresentationTimestamp is meaningful only when HasPTS is set.
	PresentationTimestamp float64
	HasPTS                bool
}

// Table is a read-only snapshot of a video timing table, ordered by packet
// index.
type Table struct {
	rows    []Row
	byPTS   map[float64]int
	skipped int
}

// NewTable builds a Table from rows in any order. The input slice is copied
// and sorted by packet index; rows sharing an index keep their input order.
func NewTable(rows []Row) *Table {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b Row) int {
		switch {
		case a.PacketIndex < b.PacketIndex:
			return -1
		case a.PacketIndex > b.PacketIndex:
			return 1
		}
		return 0
	})

	t := &Table{
		rows:  sorted,
		byPTS: make(map[float64]int),
	}
	for i, r := range sorted {
		if !r.HasPTS {
			continue
		}
		if _, dup := t.byPTS[r.PresentationTimestamp]; !dup {
			t.byPTS[r.PresentationTimestamp] = i
		}
	}
	return t
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows in packet-index order.
func (t *Table) Rows() []Row {
	return slices.Clone(t.rows)
}

// Skipped returns how many input rows were dropped while loading because they
// had no reference clock value.
func (t *Table) Skipped() int {
	return t.skipped
}

// Bracket returns the row with the greatest packet index strictly below idx
// and the row with the smallest packet index strictly above it. ok is false
// when idx lies outside the captured window on either side.
func (t *Table) Bracket(idx int64) (floor, ceiling Row, ok bool) {
	// First row with PacketIndex >= idx.
	lo := sort.Search(len(t.rows), func(i int) bool { return t.rows[i].PacketIndex >= idx })
	// First row with PacketIndex > idx.
	hi := sort.Search(len(t.rows), func(i int) bool { return t.rows[i].PacketIndex > idx })

	if lo == 0 || hi == len(t.rows) {
		return Row{}, Row{}, false
	}
	return t.rows[lo-1], t.rows[hi], true
}

// LookupPTS returns the row whose presentation timestamp equals pts exactly.
// When several rows carry the same timestamp, the one with the lowest packet
// index is returned.
func (t *Table) LookupPTS(pts float64) (Row, bool) {
	i, ok := t.byPTS[pts]
	if !ok {
		return Row{}, false
	}
	return t.rows[i], true
}
