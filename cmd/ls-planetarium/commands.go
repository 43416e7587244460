package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-planetarium/internal/api"
	"github.com/litescript/ls-planetarium/internal/astro"
	"github.com/litescript/ls-planetarium/internal/celestial"
	"github.com/litescript/ls-planetarium/internal/export"
	"github.com/litescript/ls-planetarium/internal/state"
	"github.com/litescript/ls-planetarium/internal/ui"
)

const (
	defaultSummaryStars = 15
	shutdownTimeout     = 5 * time.Second
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive sky view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}
}

func (a *app) runTUI() error {
	when, err := a.when()
	if err != nil {
		return err
	}
	where, err := a.cfg.Where()
	if err != nil {
		return err
	}
	center, err := a.cfg.Center()
	if err != nil {
		return err
	}
	cat, err := a.catalogue()
	if err != nil {
		return err
	}

	cfg := state.DefaultConfig()
	cfg.Observer = where
	cfg.Center = center
	cfg.FOVDeg = a.cfg.View.FOVDeg
	cfg.Log = a.log
	mgr := state.NewManager(cfg, cat, when)

	// An explicit --time freezes the clock.
	return ui.Run(ui.New(mgr, a.opts.timeStr == ""))
}

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		stars  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the observed sky as a table or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return a.runSnapshot(w, asJSON, stars)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of a table")
	cmd.Flags().IntVar(&stars, "stars", defaultSummaryStars, "number of bright stars in the table")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout (- for stdout)")
	return cmd
}

func (a *app) runSnapshot(w io.Writer, asJSON bool, stars int) error {
	sky, err := a.sky()
	if err != nil {
		return err
	}
	if asJSON {
		if err := export.ExportSky(sky).WriteJSON(w); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		return nil
	}
	export.WriteSummaryTable(w, sky, stars)
	return nil
}

func newClosestCmd(a *app) *cobra.Command {
	var x, y, maxDist float64
	cmd := &cobra.Command{
		Use:   "closest",
		Short: "Find the object nearest a point of the projection plane",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sky, err := a.sky()
			if err != nil {
				return err
			}
			obj, ok := sky.ObjectClosestTo(astro.CartesianOf(x, y), maxDist)
			if !ok {
				fprintln(cmd.OutOrStdout(), "No object within", maxDist)
				return nil
			}
			h, _ := sky.HorizontalOf(obj)
			p, _ := sky.PointOf(obj)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) at %s, Az %.2f° Alt %.2f°, plane %s\n",
				obj.Info(), obj.Kind(), h.AzOctantName("N", "E", "S", "W"), h.AzDeg(), h.AltDeg(), p)
			return nil
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "plane x coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "plane y coordinate")
	cmd.Flags().Float64Var(&maxDist, "max", 0.1, "maximum plane distance")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sky snapshots over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cat, err := a.catalogue()
	if err != nil {
		return err
	}
	where, err := a.cfg.Where()
	if err != nil {
		return err
	}
	center, err := a.cfg.Center()
	if err != nil {
		return err
	}

	handler := api.NewHandler(cat, api.Defaults{Where: where, Center: center}, a.log)
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           api.SetupRouter(handler, a.cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server.listening", "addr", srv.Addr, "stars", cat.StarCount())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newVisibilityCmd(a *app) *cobra.Command {
	var (
		body       string
		date       string
		span, step time.Duration
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "visibility",
		Short: "Rise, transit and set times of a body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := a.when()
			if err != nil {
				return err
			}
			if date != "" {
				if start, err = time.Parse(time.DateOnly, date); err != nil {
					return fmt.Errorf("invalid --date (expected YYYY-MM-DD): %w", err)
				}
			}
			where, err := a.cfg.Where()
			if err != nil {
				return err
			}
			cat, err := a.catalogue()
			if err != nil {
				return err
			}

			f, err := celestial.LookupBody(body, cat)
			if err != nil {
				return err
			}
			samples, err := celestial.Sample(f, start, span, step)
			if err != nil {
				return err
			}
			w, err := astro.RiseSet(where, samples)
			if err != nil {
				return err
			}

			out := export.ExportWindow(body, w)
			if asJSON {
				return out.WriteJSON(cmd.OutOrStdout())
			}
			writeWindow(cmd.OutOrStdout(), out, where)
			return nil
		},
	}
	cmd.Flags().StringVar(&body, "body", "sun", "sun, moon, a planet or a catalogue star name")
	cmd.Flags().StringVar(&date, "date", "", "UTC day to scan, YYYY-MM-DD (default: from --time)")
	cmd.Flags().DurationVar(&span, "span", 24*time.Hour, "time span to scan")
	cmd.Flags().DurationVar(&step, "step", 10*time.Minute, "sampling step")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON")
	return cmd
}

func writeWindow(w io.Writer, win export.WindowExport, where astro.Geographic) {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format(time.RFC3339)
	}
	fmt.Fprintf(w, "%s from %s\n", win.Body, where)
	switch {
	case win.AlwaysVisible:
		fprintln(w, "  above the horizon for the whole span")
	case win.NeverVisible:
		fprintln(w, "  below the horizon for the whole span")
	}
	fmt.Fprintf(w, "  rise     %s\n", format(win.Rise))
	fmt.Fprintf(w, "  transit  %s  (%.1f°)\n", format(win.Transit), win.MaxAltDeg)
	fmt.Fprintf(w, "  set      %s\n", format(win.Set))
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "write <path>",
		Short: "Write the effective configuration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Write(args[0]); err != nil {
				return err
			}
			fprintln(cmd.OutOrStdout(), "Configuration saved to:", args[0])
			return nil
		},
	})
	return cmd
}
