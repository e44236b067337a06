// Command preroll reports the pre-roll of every SCTE-35 message found in a
// transport-stream analyzer output directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/zsiec/preroll/internal/batch"
	"github.com/zsiec/preroll/internal/config"
	"github.com/zsiec/preroll/internal/preroll"
)

var version = "dev"

const usage = "Usage: preroll <output_dir> <video_pid> <scte35_pid>"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, stopping", "signal", sig)
		cancel()
	}()

	app := newApp(os.Stdout, os.Stderr)
	if err := app.RunContext(ctx, os.Args); err != nil {
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			if msg := ec.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(ec.ExitCode())
		}
		slog.Error("preroll failed", "error", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "preroll",
		Usage:     l10n.T("Estimate SCTE-35 pre-roll from analyzer output"),
		ArgsUsage: "<output_dir> <video_pid> <scte35_pid>",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("YAML configuration file"),
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   l10n.T("Number of records estimated concurrently"),
			},
			&cli.BoolFlag{
				Name:  "pts-adjustment",
				Usage: l10n.T("Apply each section's pts_adjustment to its splice time"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
		},
		// Exit codes are handled by main so tests can run the app in-process.
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			return run(c, stdout, stderr)
		},
	}
}

func run(c *cli.Context, stdout, stderr io.Writer) error {
	if c.Args().Len() < 3 {
		return cli.Exit(usage, 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	d := batch.New(batch.Config{
		Dir:       c.Args().Get(0),
		VideoPID:  c.Args().Get(1),
		SplicePID: c.Args().Get(2),
		Workers:   cfg.Workers,
		Columns:   cfg.Columns,
		Estimator: preroll.Estimator{ApplyPTSAdjustment: cfg.ApplyPTSAdjustment},
	}, log)

	results, err := d.Run(c.Context)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	if _, err := batch.NewReporter(stdout, cfg.ClockRateHz).ReportAll(results); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// loadConfig builds the effective configuration: defaults, then the optional
// YAML file, then explicitly set flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("pts-adjustment") {
		cfg.ApplyPTSAdjustment = c.Bool("pts-adjustment")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, cfg.Validate()
}
