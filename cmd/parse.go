package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/client-info-cli/internal/clientinfo"
	"github.com/sells-group/client-info-cli/internal/config"
	"github.com/sells-group/client-info-cli/pkg/geocode"
)

var (
	parseProvider   string
	parseFixtures   string
	parseRejects    string
	parseCountry    string
	parseNoProgress bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Geocode a client contact CSV and print the enriched rows",
	Long: `Validates the input file, then geocodes each row's residential and postal
address. Rows whose addresses cannot be found, or whose postcodes disagree with
the geocoder, are dropped. Accepted rows are printed to stdout as:

  email, first, last, res street, res locality, res state, res postcode, res lat, res long,
  postal street, postal locality, postal state, postal postcode, postal lat, postal long

With no file argument, rows are read from stdin when it is not a terminal.

Examples:
  # Geocode via Nominatim (default)
  client-info-cli parse clients.csv

  # Offline, answering lookups from a YAML fixture file
  client-info-cli parse clients.csv --provider fixture --fixtures geocodes.yaml

  # Record dropped rows and why
  client-info-cli parse clients.csv --rejects rejects.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := clientinfo.ValidateInputs(args); err != nil {
			return err
		}

		applyParseFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		in, ok, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		if !ok {
			zap.L().Debug("parse: no input file and stdin is a terminal, nothing to do")
			return nil
		}
		defer in.Close() //nolint:errcheck

		client, err := newGeocodeClient(cfg.Geocode)
		if err != nil {
			return eris.Wrap(err, "parse: init geocoder")
		}

		opts := clientinfo.Options{Country: cfg.Geocode.Country}

		if cfg.Output.RejectsPath != "" {
			f, createErr := os.Create(cfg.Output.RejectsPath)
			if createErr != nil {
				return eris.Wrap(createErr, "parse: create rejects file")
			}
			defer f.Close() //nolint:errcheck

			sink, sinkErr := clientinfo.NewCSVRejectWriter(f)
			if sinkErr != nil {
				return sinkErr
			}
			defer func() {
				if flushErr := sink.Flush(); flushErr != nil {
					zap.L().Error("parse: flush rejects", zap.Error(flushErr))
				}
			}()
			opts.Rejects = sink
		}

		onLine, finish := newProgress(cfg.Output.Progress)
		defer finish()
		opts.OnLine = onLine

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := zap.L().With(zap.String("run_id", uuid.NewString()))
		log.Info("parse: starting",
			zap.Strings("input", args),
			zap.String("provider", cfg.Geocode.Provider),
			zap.String("country", cfg.Geocode.Country),
		)

		start := time.Now()
		stats, runErr := clientinfo.NewProcessor(client, opts).Run(ctx, in, cmd.OutOrStdout())
		log.Info("parse: complete", append(stats.Fields(), zap.Duration("elapsed", time.Since(start)))...)
		if runErr != nil {
			return eris.Wrap(runErr, "parse: run")
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseProvider, "provider", "", "geocode provider: nominatim, google or fixture (default from config)")
	parseCmd.Flags().StringVar(&parseFixtures, "fixtures", "", "YAML file of query to geocode results for the fixture provider")
	parseCmd.Flags().StringVar(&parseRejects, "rejects", "", "write dropped rows and their reasons to this CSV file")
	parseCmd.Flags().StringVar(&parseCountry, "country", "", "country token appended to geocode queries (default AU)")
	parseCmd.Flags().BoolVar(&parseNoProgress, "no-progress", false, "disable the progress indicator on stderr")
	rootCmd.AddCommand(parseCmd)
}

// applyParseFlags overrides config values with flags the user set explicitly.
func applyParseFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		c.Geocode.Provider = parseProvider
	}
	if flags.Changed("fixtures") {
		c.Geocode.FixturesPath = parseFixtures
		if !flags.Changed("provider") {
			c.Geocode.Provider = "fixture"
		}
	}
	if flags.Changed("rejects") {
		c.Output.RejectsPath = parseRejects
	}
	if flags.Changed("country") {
		c.Geocode.Country = parseCountry
	}
	if parseNoProgress {
		c.Output.Progress = false
	}
}

// openInput returns the file named in args, or stdin when no file was given and
// stdin is not a terminal. ok is false when there is nothing to read.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, bool, error) {
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, false, eris.Wrap(err, "parse: open input")
		}
		return f, true, nil
	}

	in := cmd.InOrStdin()
	if f, isFile := in.(*os.File); isFile && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil, false, nil
	}
	return io.NopCloser(in), true, nil
}

// newGeocodeClient builds the geocoding client selected by cfg.Provider.
func newGeocodeClient(gc config.GeocodeConfig) (geocode.Client, error) {
	opts := []geocode.Option{
		geocode.WithTimeout(time.Duration(gc.TimeoutSecs) * time.Second),
		geocode.WithRateLimit(gc.RateLimit),
		geocode.WithNominatimURL(gc.NominatimURL),
		geocode.WithUserAgent(gc.UserAgent),
	}

	switch gc.Provider {
	case "fixture":
		p, err := geocode.LoadFixtures(gc.FixturesPath)
		if err != nil {
			return nil, err
		}
		zap.L().Debug("parse: loaded geocode fixtures", zap.Int("queries", p.Len()))
		return p, nil
	case "google":
		return geocode.NewGoogleClient(append(opts, geocode.WithGoogleAPIKey(gc.GoogleKey))...), nil
	case "nominatim":
		if gc.GoogleKey != "" {
			opts = append(opts, geocode.WithGoogleAPIKey(gc.GoogleKey))
		}
		return geocode.NewClient(opts...), nil
	default:
		return nil, eris.Errorf("parse: unknown geocode provider %q", gc.Provider)
	}
}

// newProgress returns a per-line callback that advances a spinner on stderr, and
// a function that clears it. Both are no-ops unless stderr is a terminal.
func newProgress(enabled bool) (func(clientinfo.Outcome), func()) {
	if !enabled || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil, func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Geocoding rows"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	advance := func(clientinfo.Outcome) { _ = bar.Add(1) }
	finish := func() { _ = bar.Finish() }
	return advance, finish
}
