package batch

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ideamans/go-l10n"

	"github.com/zsiec/preroll/internal/clock"
	"github.com/zsiec/preroll/internal/preroll"
)

func TestFormatResult(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "zero",
			res:  Result{Name: "500_0"},
			want: "Preroll for 500_0 is 0ms",
		},
		{
			name: "truncated toward zero",
			res:  Result{Name: "500_1", Estimate: preroll.Estimate{Preroll: 4_049_999}},
			want: "Preroll for 500_1 is 149ms",
		},
		{
			name: "negative",
			res:  Result{Name: "500_2", Estimate: preroll.Estimate{Preroll: -2_700_000}},
			want: "Preroll for 500_2 is -100ms",
		},
		{
			name: "failure",
			res:  Result{Name: "500_3", Err: preroll.ErrOutOfRange},
			want: "Fail to get preroll for 500_3",
		},
	}
	for _, tc := range tests {
		if got := FormatResult(tc.res, clock.Rate27MHz); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestReportAll(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	rp := NewReporter(&buf, clock.Rate27MHz)

	results := []Result{
		{Index: 0, Name: "500_0", Estimate: preroll.Estimate{Preroll: 27_000_000}},
		{Index: 1, Name: "500_1", Err: errors.New("boom")},
		{Index: 2, Name: "500_2", Estimate: preroll.Estimate{Preroll: 810_000}},
	}
	failed, err := rp.ReportAll(results)
	if err != nil {
		t.Fatalf("ReportAll: %v", err)
	}
	if failed != 1 {
		t.Errorf("failed: got %d, want 1", failed)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"Preroll for 500_0 is 1000ms",
		"Fail to get preroll for 500_1",
		"Preroll for 500_2 is 30ms",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines: got %d, want %d\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
	if strings.Contains(buf.String(), colorRed) {
		t.Error("non-terminal writer must not receive colour codes")
	}
}

// Not parallel: ForceLanguage changes process-wide state.
func TestFormatResultIgnoresLocale(t *testing.T) {
	l10n.ForceLanguage("ja")
	defer l10n.ResetLanguage()

	ok := Result{Name: "500_0", Estimate: preroll.Estimate{Preroll: 810_000}}
	if got, want := FormatResult(ok, clock.Rate27MHz), "Preroll for 500_0 is 30ms"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	failed := Result{Name: "500_1", Err: preroll.ErrTargetNotFound}
	if got, want := FormatResult(failed, clock.Rate27MHz), "Fail to get preroll for 500_1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestReportWriteError(t *testing.T) {
	t.Parallel()
	rp := NewReporter(failingWriter{}, clock.Rate27MHz)
	if _, err := rp.ReportAll([]Result{{Name: "500_0"}}); err == nil {
		t.Error("expected write error")
	}
}
