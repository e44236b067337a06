// Package batch runs the pre-roll estimator over every splice record of one
// SCTE-35 PID in an analyzer output directory and reports one line per
// record. A failing record never aborts the batch; its error is carried in
// its Result.
package batch

import (
	"context"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/zsiec/preroll/internal/clock"
	"github.com/zsiec/preroll/internal/preroll"
	"github.com/zsiec/preroll/internal/splice"
	"github.com/zsiec/preroll/internal/timing"
)

// Config describes one batch run.
type Config struct {
	// Dir is the analyzer output directory holding <VideoPID>.csv and
	// <SplicePID>_<idx>.json files.
	Dir       string
	VideoPID  string
	SplicePID string

	// Workers bounds concurrent estimations. Values below 1 mean 1.
	Workers int

	Columns   timing.Columns
	Estimator preroll.Estimator
}

// Result is the outcome for a single splice record. Exactly one of Estimate
// and Err is meaningful.
type Result struct {
	Index    int
	Name     string
	Estimate preroll.Estimate
	Err      error
}

// OK reports whether the record's pre-roll was computed.
func (r Result) OK() bool {
	return r.Err == nil
}

// Driver runs a batch.
type Driver struct {
	log *slog.Logger
	cfg Config
}

// New creates a Driver. If log is nil, slog.Default() is used.
func New(cfg Config, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Columns == (timing.Columns{}) {
		cfg.Columns = timing.DefaultColumns()
	}
	return &Driver{
		log: log.With("component", "batch", "scte35_pid", cfg.SplicePID),
		cfg: cfg,
	}
}

// TablePath returns the location of the video timing table.
func (d *Driver) TablePath() string {
	return filepath.Join(d.cfg.Dir, d.cfg.VideoPID+".csv")
}

// Run discovers the splice records, estimates each one and returns the
// results in index order. It returns an error only when the records cannot
// be listed or ctx is cancelled.
func (d *Driver) Run(ctx context.Context) ([]Result, error) {
	n, err := splice.Discover(d.cfg.Dir, d.cfg.SplicePID)
	if err != nil {
		return nil, err
	}
	d.log.Info("splice records discovered", "count", n, "dir", d.cfg.Dir)
	if n == 0 {
		return nil, nil
	}

	// The table is shared read-only by all workers. A load failure is
	// reported against every record rather than aborting.
	tbl, tblErr := timing.Load(d.TablePath(), d.cfg.Columns)
	if tblErr != nil {
		d.log.Error("failed to load timing table", "path", d.TablePath(), "error", tblErr)
	} else {
		d.log.Debug("timing table loaded", "path", d.TablePath(), "rows", tbl.Len(), "skipped", tbl.Skipped())
	}

	results := make([]Result, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = d.process(i, tbl, tblErr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	d.log.Info("batch finished", "records", n, "failed", failed)
	return results, nil
}

func (d *Driver) process(idx int, tbl *timing.Table, tblErr error) Result {
	res := Result{Index: idx, Name: splice.Name(d.cfg.SplicePID, idx)}
	log := d.log.With("record", res.Name)

	rec, err := splice.Load(splice.Path(d.cfg.Dir, d.cfg.SplicePID, idx))
	if err != nil {
		log.Warn("failed to load splice record", "error", err)
		res.Err = err
		return res
	}
	if tblErr != nil {
		res.Err = tblErr
		return res
	}

	est, err := d.cfg.Estimator.Estimate(rec, tbl)
	if err != nil {
		log.Debug("estimation failed", "packet", rec.PacketIndex, "command", rec.CommandType, "error", err)
		res.Err = err
		return res
	}

	spliceTicks := int64(-1)
	if !est.Immediate {
		spliceTicks = clock.PTSToTicks(est.SpliceTime)
	}
	log.Debug("pre-roll estimated",
		"packet", rec.PacketIndex,
		"command", splice.CommandName(rec.Command.Type()),
		"splice_time", est.SpliceTime,
		"splice_time_ticks", spliceTicks,
		"immediate", est.Immediate,
		"floor_packet", est.Floor.PacketIndex,
		"ceiling_packet", est.Ceiling.PacketIndex,
		"message_clock", est.MessageClock,
		"target_clock", est.TargetClock,
		"preroll", est.Preroll,
	)
	res.Estimate = est
	return res
}
