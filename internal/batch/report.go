package batch

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/zsiec/preroll/internal/clock"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
)

// Reporter writes one human-readable line per Result.
type Reporter struct {
	w           io.Writer
	clockRateHz int64
	color       bool
}

// NewReporter creates a Reporter that converts pre-roll ticks to
// milliseconds at clockRateHz. Failure lines are coloured when w is a
// terminal.
func NewReporter(w io.Writer, clockRateHz int64) *Reporter {
	return &Reporter{
		w:           w,
		clockRateHz: clockRateHz,
		color:       isTerminal(w),
	}
}

// FormatResult renders a result as printed by the reporter, without colour.
// Result lines are machine-read and are never localised.
func FormatResult(r Result, clockRateHz int64) string {
	if !r.OK() {
		return fmt.Sprintf("Fail to get preroll for %s", r.Name)
	}
	return fmt.Sprintf("Preroll for %s is %dms", r.Name, clock.Milliseconds(r.Estimate.Preroll, clockRateHz))
}

// Report writes the line for a single result.
func (rp *Reporter) Report(r Result) error {
	line := FormatResult(r, rp.clockRateHz)
	if rp.color && !r.OK() {
		line = colorRed + line + colorReset
	}
	_, err := fmt.Fprintln(rp.w, line)
	return err
}

// ReportAll writes every result in order and returns how many failed.
func (rp *Reporter) ReportAll(results []Result) (failed int, err error) {
	for _, r := range results {
		if !r.OK() {
			failed++
		}
		if err := rp.Report(r); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
