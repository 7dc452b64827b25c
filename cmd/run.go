package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gauntlet-bench/gauntlet/internal/aggregate"
	"github.com/gauntlet-bench/gauntlet/internal/catalog"
	"github.com/gauntlet-bench/gauntlet/internal/hardware"
	"github.com/gauntlet-bench/gauntlet/internal/metrics"
	"github.com/gauntlet-bench/gauntlet/internal/report"
	"github.com/gauntlet-bench/gauntlet/internal/result"
	"github.com/gauntlet-bench/gauntlet/internal/scheduler"
	"github.com/gauntlet-bench/gauntlet/internal/session"
)

var (
	flagOutputDir   string
	flagWorkers     int
	flagTimeout     int
	flagCategory    string
	flagFormat      string
	flagMetricsAddr string
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a benchmarking session",
		RunE:  runSession,
	}
	cmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "override results directory")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "override worker budget (default: sized from hardware)")
	cmd.Flags().IntVar(&flagTimeout, "timeout", 0, "override per-task timeout in minutes")
	cmd.Flags().StringVar(&flagCategory, "category", "", "run only the named category")
	cmd.Flags().StringVar(&flagFormat, "format", "", "report format: table, markdown, or json")
	cmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")
	return cmd
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagWorkers > 0 {
		cfg.Execution.Workers = flagWorkers
	}
	if flagTimeout > 0 {
		cfg.Execution.TimeoutMinutes = flagTimeout
	}
	if flagOutputDir != "" {
		cfg.Output.Dir = flagOutputDir
	}
	if flagFormat != "" {
		cfg.Output.Format = flagFormat
	}
	if flagCategory != "" {
		if err := cfg.EnableOnly(flagCategory); err != nil {
			return err
		}
	}

	// Configuration errors surface here, before anything runs.
	tasks, err := catalog.Build(cfg)
	if err != nil {
		return fmt.Errorf("building task catalog: %w", err)
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no benchmarks enabled")
	}

	sess, err := session.New(cfg.Output.Dir)
	if err != nil {
		return err
	}
	defer sess.Close()

	if flagMetricsAddr != "" {
		go func() {
			if err := metrics.Serve(flagMetricsAddr); err != nil {
				sess.Log.Printf("warning: metrics server: %v", err)
			}
		}()
	}

	workers := cfg.Execution.Workers
	if workers < 1 {
		workers = hardware.DefaultWorkers()
	}
	sess.Log.Printf("session %s: %d tasks, %d workers (%d cores, %.1f GiB memory)",
		sess.ID, len(tasks), workers, hardware.LogicalCores(),
		float64(hardware.TotalMemory())/(1<<30))

	sched, err := scheduler.New(scheduler.Options{
		Workers:     workers,
		TaskTimeout: time.Duration(cfg.Execution.TimeoutMinutes) * time.Minute,
		Log:         sess.Log,
	})
	if err != nil {
		return fmt.Errorf("allocating worker pools: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Execution.SessionTimeoutMinutes > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Execution.SessionTimeoutMinutes)*time.Minute)
		defer cancel()
	}

	start := time.Now()
	results := sched.Run(ctx, tasks)
	agg := aggregate.Compute(sess.ID, results, time.Since(start))

	// Storage failures never discard an evaluation that already happened.
	if err := result.WriteAggregate(sess.Dir, agg); err != nil {
		sess.Log.Printf("warning: saving aggregate results: %v", err)
	}
	if err := result.WriteResults(sess.Dir, results); err != nil {
		sess.Log.Printf("warning: saving individual results: %v", err)
	}
	if err := report.WriteSessionReport(sess.Dir, agg); err != nil {
		sess.Log.Printf("warning: writing session report: %v", err)
	}

	sess.Log.Printf("session %s complete: WPI %.2f/100, %d/%d completed",
		sess.ID, agg.WPI, agg.Completed, agg.Total)

	fmt.Fprintln(cmd.OutOrStdout())
	return report.Render(agg, cfg.Output.Format, cmd.OutOrStdout())
}
