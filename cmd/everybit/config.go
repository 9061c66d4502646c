package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hupe1980/everybit/internal/conv"
	"github.com/hupe1980/everybit/perf"
	"github.com/hupe1980/everybit/script"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix           = "EVERYBIT"
	defaultStoreType    = "local"
	defaultReportFormat = "text"
	defaultLogLevel     = "warn"
	defaultLogFormat    = "text"
	defaultWorkers      = 1
)

// Config holds the command configuration.
type Config struct {
	Tests   []string      `mapstructure:"test"`
	Select  int           `mapstructure:"select"`
	Short   bool          `mapstructure:"short"`
	Medium  bool          `mapstructure:"medium"`
	Large   bool          `mapstructure:"large"`
	Budget  time.Duration `mapstructure:"budget"`
	Verbose bool          `mapstructure:"verbose"`
	Workers int64         `mapstructure:"workers"`
	Store   StoreConfig   `mapstructure:"store"`
	Report  ReportConfig  `mapstructure:"report"`
	Memory  LimitConfig   `mapstructure:"memory"`
	IO      LimitConfig   `mapstructure:"io"`
	Log     LogConfig     `mapstructure:"log"`
}

// StoreConfig selects where scripts are read from and reports written to.
type StoreConfig struct {
	Type      string `mapstructure:"type"`
	Root      string `mapstructure:"root"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access-key"`
	SecretKey string `mapstructure:"secret-key"`
	Secure    bool   `mapstructure:"secure"`
	Region    string `mapstructure:"region"`
}

// ReportConfig controls persisting of the timed rotation report.
type ReportConfig struct {
	Name   string `mapstructure:"name"`
	Format string `mapstructure:"format"`
}

// LimitConfig holds a human readable byte quantity such as "64MiB".
type LimitConfig struct {
	Limit string `mapstructure:"limit"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// newFlagSet declares every flag of the command.
func newFlagSet(stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("everybit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	fs.StringSliceP("test", "t", nil, "run the test script `file` (repeatable)")
	fs.IntP("select", "n", script.AllCases, "run only test case `id` (-1 runs all)")
	fs.BoolP("short", "s", false, "run a small (0.01s) timed rotation")
	fs.BoolP("medium", "m", false, "run a medium (0.1s) timed rotation")
	fs.BoolP("large", "l", false, "run a large (1s) timed rotation")
	fs.Duration("budget", 0, "run a timed rotation with a custom budget (i.e. 250ms)")
	fs.BoolP("verbose", "v", false, "print the array after every n and r command")
	fs.Int64("workers", defaultWorkers, "number of test scripts run in parallel")
	fs.String("store.type", defaultStoreType, "blob store holding scripts and reports (local, s3, minio)")
	fs.String("store.root", "", "root directory of the local store")
	fs.String("store.bucket", "", "bucket of the s3 or minio store")
	fs.String("store.prefix", "", "key prefix of the s3 or minio store")
	fs.String("store.endpoint", "", "endpoint of the minio store or an s3-compatible service")
	fs.String("store.access-key", "", "minio access key")
	fs.String("store.secret-key", "", "minio secret key")
	fs.Bool("store.secure", true, "use TLS for minio")
	fs.String("store.region", "", "region of the s3 or minio store")
	fs.String("report.name", "", "store the timed rotation report under `name` (.zst, .gz and .lz4 compress)")
	fs.String("report.format", defaultReportFormat, "report format (text, json)")
	fs.String("memory.limit", "", "memory budget for bit arrays (i.e. 512MiB, empty is unlimited)")
	fs.String("io.limit", "", "blob read and write rate per second (i.e. 4MB, empty is unlimited)")
	fs.String("log.level", defaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("log.format", defaultLogFormat, "log format (text, json)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: everybit [flags]\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nThe -s, -m, -l and --budget options only test performance and NOT correctness.\n")
		fmt.Fprintf(stderr, "\nEnvironment variables are also available with the same name as flags,\n")
		fmt.Fprintf(stderr, "  except for dashes (-) and dots (.) which are replaced by underscores (_).\n")
		fmt.Fprintf(stderr, "  For example, EVERYBIT_STORE_TYPE or EVERYBIT_LOG_LEVEL\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  # Run all tests in the file tests/default\n")
		fmt.Fprintf(stderr, "  everybit -t tests/default\n\n")
		fmt.Fprintf(stderr, "  # Run test 1 in the file tests/default\n")
		fmt.Fprintf(stderr, "  everybit -n 1 -t tests/default\n\n")
		fmt.Fprintf(stderr, "  # Run compressed scripts from S3\n")
		fmt.Fprintf(stderr, "  everybit --store.type=s3 --store.bucket=bits -t suite/a.zst -t suite/b.zst\n\n")
		fmt.Fprintf(stderr, "  # Run the medium timed rotation and keep a JSON report\n")
		fmt.Fprintf(stderr, "  everybit -m --report.name=perf/medium.json --report.format=json\n")
	}
	return fs
}

// loadConfig loads configuration from flags, environment variables, and
// defaults.
func loadConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}

// validateConfig checks values the flag parser cannot.
func validateConfig(cfg *Config) error {
	switch cfg.Store.Type {
	case "local":
	case "s3", "minio":
		if cfg.Store.Bucket == "" {
			return fmt.Errorf("store.bucket is required for the %s store", cfg.Store.Type)
		}
		if cfg.Store.Type == "minio" && cfg.Store.Endpoint == "" {
			return fmt.Errorf("store.endpoint is required for the minio store")
		}
	default:
		return fmt.Errorf("invalid store type %q, available types: [local s3 minio]", cfg.Store.Type)
	}

	if _, err := perf.ParseFormat(cfg.Report.Format); err != nil {
		return err
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return err
	}
	if f := cfg.Log.Format; f != "text" && f != "json" {
		return fmt.Errorf("invalid log format %q, available formats: [text json]", f)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Budget < 0 {
		return fmt.Errorf("budget must not be negative, got %s", cfg.Budget)
	}
	if _, err := cfg.Memory.bytes(); err != nil {
		return fmt.Errorf("memory.limit: %w", err)
	}
	if _, err := cfg.IO.bytes(); err != nil {
		return fmt.Errorf("io.limit: %w", err)
	}
	return nil
}

// hasAction reports whether the configuration asks for any work.
func (c *Config) hasAction() bool {
	_, timed := c.budget()
	return len(c.Tests) > 0 || timed
}

// budget returns the timed rotation budget, preferring an explicit --budget
// over the presets.
func (c *Config) budget() (time.Duration, bool) {
	switch {
	case c.Budget > 0:
		return c.Budget, true
	case c.Large:
		return perf.Large, true
	case c.Medium:
		return perf.Medium, true
	case c.Short:
		return perf.Short, true
	}
	return 0, false
}

func (l LimitConfig) bytes() (int64, error) {
	if l.Limit == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(l.Limit)
	if err != nil {
		return 0, err
	}
	return conv.Uint64ToInt64(n)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q, available levels: [debug info warn error]", s)
	}
	return level, nil
}
