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
	"time"

	"github.com/hupe1980/everybit"
	"github.com/hupe1980/everybit/blobstore"
	"github.com/hupe1980/everybit/blobstore/minio"
	"github.com/hupe1980/everybit/blobstore/s3"
	"github.com/hupe1980/everybit/perf"
	"github.com/hupe1980/everybit/resource"
	"github.com/hupe1980/everybit/script"
	flag "github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns its exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet(stderr)
	cfg, err := loadConfig(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	if !cfg.hasAction() {
		fs.Usage()
		return 0
	}
	if err := validateConfig(cfg); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger := newLogger(cfg.Log, stderr)
	metrics := &everybit.BasicMetricsCollector{}

	rc, err := newController(cfg)
	if err != nil {
		logger.Error("invalid resource limits", "error", err)
		return 1
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		logger.Error("failed to open store", "type", cfg.Store.Type, "error", err)
		return 1
	}

	code := 0
	if len(cfg.Tests) > 0 {
		if !runTests(ctx, cfg, store, rc, logger, metrics, stdout) {
			code = 1
		}
	}
	if budget, ok := cfg.budget(); ok {
		if !runTimed(ctx, cfg, budget, store, rc, logger, metrics, stdout) {
			code = 1
		}
	}

	stats := metrics.GetStats()
	logger.Info("finished",
		"allocs", stats.AllocCount,
		"alloc_bits", stats.AllocBits,
		"rotations", stats.RotateCount,
		"passed", stats.ExpectPassed,
		"failed", stats.ExpectFailed,
		"tiers", stats.TierCount,
	)
	return code
}

func runTests(ctx context.Context, cfg *Config, store blobstore.BlobStore, rc *resource.Controller,
	logger *everybit.Logger, metrics everybit.MetricsCollector, stdout io.Writer) bool {
	opts := []script.Option{
		script.WithSelect(cfg.Select),
		script.WithLogger(logger),
		script.WithMetricsCollector(metrics),
		script.WithResourceController(rc),
	}
	if cfg.Verbose {
		opts = append(opts, script.WithVerbose(stdout))
	}

	reports, err := script.RunAll(ctx, store, cfg.Tests, opts...)
	ok := err == nil
	for _, rep := range reports {
		if rep == nil {
			continue
		}
		if _, werr := rep.WriteTo(stdout); werr != nil {
			logger.Error("failed to write report", "file", rep.File, "error", werr)
			ok = false
		}
		if !rep.OK() {
			ok = false
		}
	}
	if err != nil {
		logger.Error("test run failed", "error", err)
		fmt.Fprintf(stdout, "Error: %v\n", err)
	}
	return ok
}

func runTimed(ctx context.Context, cfg *Config, budget time.Duration, store blobstore.BlobStore, rc *resource.Controller,
	logger *everybit.Logger, metrics everybit.MetricsCollector, stdout io.Writer) bool {
	opts := []perf.Option{
		perf.WithLogger(logger),
		perf.WithMetricsCollector(metrics),
		perf.WithResourceController(rc),
		perf.WithProgress(stdout),
	}

	if err := perf.WriteHeader(stdout); err != nil {
		logger.Error("failed to write header", "error", err)
		return false
	}
	res, err := perf.TimedRotation(ctx, budget, opts...)
	if err != nil {
		logger.Error("timed rotation failed", "error", err)
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return false
	}
	fmt.Fprintf(stdout, "------\nSucceeded tier: %d\n", res.Best)

	if cfg.Report.Name == "" {
		return true
	}
	format, _ := perf.ParseFormat(cfg.Report.Format)
	if err := perf.WriteReport(ctx, store, cfg.Report.Name, res, format, opts...); err != nil {
		logger.Error("failed to store report", "name", cfg.Report.Name, "error", err)
		return false
	}
	logger.Info("stored report", "name", cfg.Report.Name, "format", format.String())
	return true
}

func newLogger(cfg LogConfig, w io.Writer) *everybit.Logger {
	level, _ := parseLevel(cfg.Level)
	hopts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return everybit.NewLogger(slog.NewJSONHandler(w, hopts))
	}
	return everybit.NewLogger(slog.NewTextHandler(w, hopts))
}

func newController(cfg *Config) (*resource.Controller, error) {
	mem, err := cfg.Memory.bytes()
	if err != nil {
		return nil, err
	}
	ioLimit, err := cfg.IO.bytes()
	if err != nil {
		return nil, err
	}
	return resource.NewController(resource.Config{
		MemoryLimitBytes:   mem,
		MaxWorkers:         cfg.Workers,
		IOLimitBytesPerSec: ioLimit,
	}), nil
}

func openStore(ctx context.Context, cfg StoreConfig) (blobstore.BlobStore, error) {
	switch cfg.Type {
	case "s3":
		var opts []s3.Option
		if cfg.Prefix != "" {
			opts = append(opts, s3.WithPrefix(cfg.Prefix))
		}
		if cfg.Region != "" {
			opts = append(opts, s3.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.Endpoint))
		}
		return s3.New(ctx, cfg.Bucket, opts...)
	case "minio":
		return minio.Dial(minio.Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Secure:    cfg.Secure,
			Region:    cfg.Region,
			Bucket:    cfg.Bucket,
			Prefix:    cfg.Prefix,
		})
	default:
		return blobstore.NewLocalStore(cfg.Root), nil
	}
}
