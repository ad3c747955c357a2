package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pfrederiksen/bbwaa-awards/internal/award"
	"github.com/pfrederiksen/bbwaa-awards/internal/collect"
	"github.com/pfrederiksen/bbwaa-awards/internal/config"
	"github.com/pfrederiksen/bbwaa-awards/internal/logger"
	"github.com/pfrederiksen/bbwaa-awards/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitJobsFailed = 2
)

// errJobsFailed signals a batch that completed with failed jobs
var errJobsFailed = errors.New("one or more jobs failed")

// options holds flag values shared by all commands
type options struct {
	configPath string
	dataDir    string
	baseURL    string
	verbose    bool

	year   int
	league string

	from    int
	to      int
	workers int
	leagues []string
	awards  []string
	format  string

	cfg *config.Config
	log *logger.Logger
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "bbwaa-awards",
		Short: "Download BBWAA Cy Young and MVP voting results as CSV",
		Long: `A CLI tool to download BBWAA award voting results.
Each award and league produces two CSV files: the results summary and the
per-voter ballot breakdown.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "dir", "", "Output directory for CSV files (default ./data/)")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Override the results site URL")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().MarkHidden("base-url")

	cmd.AddCommand(newAwardCmd(opts, award.CyYoung))
	cmd.AddCommand(newAwardCmd(opts, award.MVP))
	cmd.AddCommand(newBatchCmd(opts))

	return cmd
}

// setup loads config, applies flag overrides and installs the logger
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.OutputDir = o.dataDir
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}

	level := logger.LevelInfo
	if cfg.Verbose {
		level = logger.LevelDebug
	}
	o.log = logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(o.log)

	o.cfg = cfg
	return nil
}

func (o *options) collector() *collect.Collector {
	scraperOpts := o.cfg.ScraperOptions()
	scraperOpts.Logger = o.log
	return collect.New(scraper.NewWithOptions(scraperOpts), o.cfg, o.log)
}

func newAwardCmd(opts *options, kind award.Kind) *cobra.Command {
	names := map[award.Kind]string{award.CyYoung: "Cy Young", award.MVP: "MVP"}

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Download the %s results for one season and league", names[kind]),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := opts.collector()

			var (
				files []string
				err   error
			)
			switch kind {
			case award.CyYoung:
				files, err = c.ScrapeCyYoung(ctx, opts.year, opts.league, opts.cfg.OutputDir)
			case award.MVP:
				files, err = c.ScrapeMVP(ctx, opts.year, opts.league, opts.cfg.OutputDir)
			}
			if err != nil {
				return err
			}

			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.year, "year", time.Now().Year(), "Season to download")
	cmd.Flags().StringVar(&opts.league, "league", "", "League: AL or NL (required)")
	cmd.MarkFlagRequired("league")

	return cmd
}

func newBatchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Download every configured award and league for a range of seasons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.from, "from", 0, "First season (default from config, 2012)")
	cmd.Flags().IntVar(&opts.to, "to", 0, "Last season, inclusive (default from config, 2018)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of jobs to run at once (default from config, 1)")
	cmd.Flags().StringSliceVar(&opts.leagues, "league", nil, "Leagues to download (default AL,NL)")
	cmd.Flags().StringSliceVar(&opts.awards, "award", nil, "Awards to download: cy, mvp (default both)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")

	return cmd
}

// runBatch is the batch command logic
func runBatch(cmd *cobra.Command, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	cfg := opts.cfg
	flags := cmd.Flags()
	if flags.Changed("from") {
		cfg.Years.From = opts.from
	}
	if flags.Changed("to") {
		cfg.Years.To = opts.to
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("league") {
		cfg.Leagues = opts.leagues
	}
	if flags.Changed("award") {
		cfg.Awards = opts.awards
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c := opts.collector()
	jobs, err := c.Jobs()
	if err != nil {
		return err
	}

	logger.ResetMetrics()
	report := c.RunBatch(cmd.Context(), jobs)

	result := NewOutputResult(report)
	if cfg.Verbose {
		result.Metrics = logger.GetMetricsSnapshot()
	}
	if err := WriteOutput(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if report.Failed() > 0 {
		return errJobsFailed
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
		return
	case errors.Is(err, errJobsFailed):
		stop()
		os.Exit(ExitJobsFailed)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
