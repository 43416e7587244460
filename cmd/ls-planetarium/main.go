// Command ls-planetarium renders the sky seen by an observer on Earth, in
// the terminal or as JSON over HTTP.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-planetarium/internal/astro"
	"github.com/litescript/ls-planetarium/internal/catalog"
	"github.com/litescript/ls-planetarium/internal/celestial"
	"github.com/litescript/ls-planetarium/internal/config"
	"github.com/litescript/ls-planetarium/internal/logging"
	"github.com/litescript/ls-planetarium/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the global flags.
type options struct {
	configPath string
	logLevel   string
	timeStr    string
	lat, lon   float64
	az, alt    float64
}

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	opts    options
	cfg     *config.Config
	log     *slog.Logger
	cleanup func() error
	now     func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	rootCmd := &cobra.Command{
		Use:           "ls-planetarium",
		Short:         "A planetarium for the terminal",
		Long:          "ls-planetarium computes the positions of the Sun, the Moon, the planets and the bright stars for an observer and renders them.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.cleanup != nil {
				return a.cleanup()
			}
			return nil
		},
		// Without a subcommand: interactive on a terminal, summary otherwise.
		RunE: func(cmd *cobra.Command, args []string) error {
			if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				return a.runTUI()
			}
			return a.runSnapshot(cmd.OutOrStdout(), false, defaultSummaryStars)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.opts.configPath, "config", "", "config file (default ./ls-planetarium.yaml or ~/.config/ls-planetarium/ls-planetarium.yaml)")
	pf.StringVar(&a.opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.opts.timeStr, "time", "", "observation instant, RFC3339 (default now)")
	pf.Float64Var(&a.opts.lat, "lat", 0, "observer latitude in degrees")
	pf.Float64Var(&a.opts.lon, "lon", 0, "observer longitude in degrees, east positive")
	pf.Float64Var(&a.opts.az, "az", 0, "view center azimuth in degrees")
	pf.Float64Var(&a.opts.alt, "alt", 0, "view center altitude in degrees")

	rootCmd.AddCommand(
		newTUICmd(a),
		newSnapshotCmd(a),
		newClosestCmd(a),
		newServeCmd(a),
		newVisibilityCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// setup loads the config, applies explicit flags on top and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("lat") {
		cfg.Observer.LatDeg = a.opts.lat
	}
	if flags.Changed("lon") {
		cfg.Observer.LonDeg = a.opts.lon
	}
	if flags.Changed("az") {
		cfg.View.CenterAzDeg = a.opts.az
	}
	if flags.Changed("alt") {
		cfg.View.CenterAltDeg = a.opts.alt
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level := logging.ParseLevel(cfg.Log.Level)
	switch {
	case cfg.Log.File != "":
		log, cleanup, err := logging.NewFile(cfg.Log.File, level)
		if err != nil {
			return err
		}
		a.log, a.cleanup = log, cleanup
	case cmd.Name() == "tui" || cmd == cmd.Root():
		// The TUI owns the terminal.
		a.log = logging.Discard()
	default:
		a.log = logging.New(level, cmd.ErrOrStderr())
	}
	return nil
}

// when returns the --time instant or the current time.
func (a *app) when() (time.Time, error) {
	if a.opts.timeStr == "" {
		return a.now(), nil
	}
	t, err := time.Parse(time.RFC3339, a.opts.timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --time (expected RFC3339): %w", err)
	}
	return t, nil
}

func (a *app) catalogue() (*celestial.StarCatalogue, error) {
	return catalog.LoadFiles(a.cfg.Catalog.StarsPath, a.cfg.Catalog.AsterismsPath, a.log)
}

// sky builds the observed sky for the configured observer and view.
func (a *app) sky() (*celestial.ObservedSky, error) {
	when, err := a.when()
	if err != nil {
		return nil, err
	}
	where, err := a.cfg.Where()
	if err != nil {
		return nil, err
	}
	center, err := a.cfg.Center()
	if err != nil {
		return nil, err
	}
	cat, err := a.catalogue()
	if err != nil {
		return nil, err
	}
	sky, err := celestial.NewObservedSky(when, where, astro.NewStereographicProjection(center), cat)
	if err != nil {
		return nil, err
	}
	a.log.Debug("sky.built", "when", when, "where", where.String(), "stars", len(sky.Stars()))
	return sky, nil
}

func fprintln(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}
