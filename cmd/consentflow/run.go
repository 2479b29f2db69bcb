package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/config"
	"github.com/katalvlaran/consentflow/metrics"
	"github.com/katalvlaran/consentflow/tui"
)

func (a *app) runCmd() *cobra.Command {
	var (
		fps         int
		metricsAddr string
		headless    bool
		duration    time.Duration
		out         string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the live animation in the terminal",
		Long: `Runs the animation full-screen. Mouse motion drives parallax, clicks fire
signal bursts. Keys: 1/2/3 or c switch consent, +/- density, s reseed,
r reduced motion, ? help, q quit.

With --config the file is watched and the consent policy, density, seed and
reduced-motion settings are re-applied on every save.

--headless animates offscreen on the real-time loop at the snapshot size for
--duration, prints the animation counters and optionally writes the last
frame to --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("fps") {
				a.cfg.FPS = fps
			}
			if cmd.Flags().Changed("metrics-addr") {
				a.cfg.Metrics.Addr = metricsAddr
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if headless {
				return a.runHeadless(ctx, duration, out)
			}
			return a.run(ctx)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&headless, "headless", false, "animate offscreen instead of in the terminal")
	cmd.Flags().DurationVar(&duration, "duration", 5*time.Second, "headless run length")
	cmd.Flags().StringVarP(&out, "out", "o", "", "headless: write the last frame to this PNG")

	return cmd
}

func (a *app) run(ctx context.Context) error {
	reg := metrics.NewRegistry()

	// The terminal UI owns stdout and stderr.
	logger := a.logger
	if a.logFile == "" {
		logger = zap.NewNop()
	}

	if a.cfg.Metrics.Addr != "" {
		srv, err := serveMetrics(a.cfg.Metrics.Addr, reg, logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	model, err := tui.New(a.cfg, logger, reg)
	if err != nil {
		return err
	}
	program := tui.NewProgram(ctx, model)

	if a.configPath != "" {
		w, err := config.NewWatcher(a.configPath, func(cfg config.Config, err error) {
			program.Send(tui.ReloadMsg{Config: cfg, Err: err})
		}, config.WithWatchLogger(logger), config.WithWatchMetrics(reg))
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	_, err = program.Run()
	model.Instance().Stop()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

// serveMetrics exposes reg on addr/metrics until the server is shut down.
func serveMetrics(addr string, reg *metrics.Registry, logger *zap.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))

	return srv, nil
}
