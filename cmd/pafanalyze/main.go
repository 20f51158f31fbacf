// Command pafanalyze estimates the peak alpha frequency of headband
// recordings (CSV, gzip-compressed CSV or ZIP exports).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/sonido-paf/export"
	"github.com/RyanBlaney/sonido-paf/ingest"
	"github.com/RyanBlaney/sonido-paf/logging"
	"github.com/RyanBlaney/sonido-paf/paf"
	"github.com/RyanBlaney/sonido-paf/paf/config"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type options struct {
	configPath    string
	window        float64
	subWindow     float64
	overlap       float64
	timestampUnit string
	format        string
	seriesOut     string
	withSeries    bool
	logLevel      string
	noColor       bool
	parallel      int

	inputs []string
	flags  *pflag.FlagSet
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("pafanalyze", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := config.DefaultSamplingParameters()
	fs.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	fs.Float64VarP(&opts.window, "window", "w", defaults.WindowSec, "Window length in seconds")
	fs.Float64VarP(&opts.subWindow, "sub-window", "s", defaults.SubWindowSec, "Welch sub-window length in seconds")
	fs.Float64VarP(&opts.overlap, "overlap", "o", defaults.Overlap, "Window overlap fraction in [0,1)")
	fs.StringVar(&opts.timestampUnit, "timestamp-unit", config.TimestampUnitAuto, "Numeric timestamp unit (auto, seconds, millis)")
	fs.StringVarP(&opts.format, "format", "f", formatText, "Output format (text, json)")
	fs.StringVar(&opts.seriesOut, "series-out", "", "Write peak series to this .csv, .json or .parquet file")
	fs.BoolVar(&opts.withSeries, "json-series", false, "Embed peak series in JSON output")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored log output")
	fs.IntVarP(&opts.parallel, "parallel", "j", 4, "Recordings analyzed concurrently")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pafanalyze [flags] <recording>...\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.inputs = fs.Args()
	opts.flags = fs
	if len(opts.inputs) == 0 {
		fs.Usage()
		return nil, errors.New("no input recordings")
	}
	if opts.format != formatText && opts.format != formatJSON {
		return nil, fmt.Errorf("unknown output format %q", opts.format)
	}
	if opts.parallel < 1 {
		opts.parallel = 1
	}
	return opts, nil
}

// loadConfig merges the config file with flags the user set explicitly.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.flags.Changed("window") {
		cfg.Sampling.WindowSec = opts.window
	}
	if opts.flags.Changed("sub-window") {
		cfg.Sampling.SubWindowSec = opts.subWindow
	}
	if opts.flags.Changed("overlap") {
		cfg.Sampling.Overlap = opts.overlap
	}
	if opts.flags.Changed("timestamp-unit") {
		cfg.TimestampUnit = opts.timestampUnit
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config, opts *options, stderr io.Writer) error {
	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	// logs go to stderr so stdout stays machine readable
	logger := logging.NewWriterLogger(stderr, stderr, !opts.noColor && stderr == os.Stderr)
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)
	return nil
}

// seriesPath returns where the series of input go. With several inputs the
// input's base name is appended to the configured file name.
func seriesPath(out, input string, multi bool) string {
	if !multi {
		return out
	}
	ext := filepath.Ext(out)
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, ".csv")
	return strings.TrimSuffix(out, ext) + "_" + base + ext
}

type outcome struct {
	input  string
	report *paf.Report
	err    error
}

func analyzeAll(ctx context.Context, a *paf.Analyzer, opts *options) []outcome {
	results := make([]outcome, len(opts.inputs))
	multi := len(opts.inputs) > 1

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.parallel)

	for i, input := range opts.inputs {
		results[i].input = input
		g.Go(func() error {
			logger := logging.WithContext(logging.ContextWithFields(ctx, logging.Fields{"input": input}))

			rows, err := ingest.Load(input)
			if err != nil {
				results[i].err = err
				return nil
			}
			report, err := a.Report(rows)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].report = report

			if opts.seriesOut != "" {
				path := seriesPath(opts.seriesOut, input, multi)
				if err := export.WriteSeries(path, report.Series); err != nil {
					results[i].err = err
					return nil
				}
				logger.Info("Wrote peak series", logging.Fields{"path": path})
			}
			return nil
		})
	}
	// per-recording failures are reported in results
	_ = g.Wait()
	return results
}

func writeOutcome(w io.Writer, o outcome, opts *options, runID string) error {
	if opts.format == formatJSON {
		return export.WriteReportJSON(w, o.report, export.Meta{RunID: runID, Source: o.input}, opts.withSeries)
	}

	if len(opts.inputs) > 1 {
		fmt.Fprintf(w, "== %s ==\n", o.input)
	}
	fmt.Fprintln(w, o.report.Result.Format())
	fmt.Fprintln(w)
	_, err := fmt.Fprintln(w, o.report.Notes())
	return err
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := setupLogging(cfg, opts, stderr); err != nil {
		return err
	}

	detect, err := paf.UnitDetectorFor(cfg.TimestampUnit)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	ctx = logging.ContextWithFields(ctx, logging.Fields{"run_id": runID})

	a, err := paf.NewAnalyzer(cfg.Sampling, paf.WithUnitDetector(detect))
	if err != nil {
		return err
	}
	a = a.WithContext(ctx)

	logger := logging.WithContext(ctx)
	logger.Info("Analyzing recordings", logging.Fields{
		"inputs":         len(opts.inputs),
		"timestamp_unit": cfg.TimestampUnit,
	})

	failed := 0
	for _, o := range analyzeAll(ctx, a, opts) {
		if o.err != nil {
			failed++
			logger.Error(o.err, "Recording failed", logging.Fields{"input": o.input})
			continue
		}
		if err := writeOutcome(stdout, o, opts, runID); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d recordings failed", failed, len(opts.inputs))
	}
	return nil
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "pafanalyze: %v\n", err)
		}
		os.Exit(1)
	}
}
