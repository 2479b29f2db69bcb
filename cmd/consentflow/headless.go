package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/config"
	"github.com/katalvlaran/consentflow/engine"
	"github.com/katalvlaran/consentflow/metrics"
	"github.com/katalvlaran/consentflow/paint/raster"
	"github.com/katalvlaran/consentflow/scheduler"
)

// stopTimeout bounds the calls made on the loop after the run ends.
const stopTimeout = 2 * time.Second

// runHeadless drives one instance on a real-time scheduler.Loop for d, or
// until ctx is cancelled, then reports its counters.
func (a *app) runHeadless(ctx context.Context, d time.Duration, out string) error {
	reg := metrics.NewRegistry()
	if a.cfg.Metrics.Addr != "" {
		srv, err := serveMetrics(a.cfg.Metrics.Addr, reg, a.logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sc := a.cfg.Snapshot
	painter := raster.New(min(sc.DPR, a.cfg.VariantKind().MaxDPR()))
	loop := scheduler.NewLoop(scheduler.WithFPS(a.cfg.FPS), scheduler.WithLogger(a.logger))
	defer loop.Close()

	host := engine.NewBasicHost(engine.Bounds{Width: float64(sc.Width), Height: float64(sc.Height)}, painter, loop)
	inst, err := engine.New(host, append(a.cfg.EngineOptions(a.logger), engine.WithMetrics(reg))...)
	if err != nil {
		return err
	}
	var startErr error
	if err := loop.Call(ctx, func() { startErr = inst.Start() }); err != nil {
		return err
	}
	if startErr != nil {
		return startErr
	}

	if a.configPath != "" {
		w, err := config.NewWatcher(a.configPath, func(cfg config.Config, err error) {
			if err != nil {
				return
			}
			loop.Post(func() { applyConfig(inst, host, cfg) })
		}, config.WithWatchLogger(a.logger), config.WithWatchMetrics(reg))
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
	timer.Stop()

	// After Stop the loop no longer touches the instance or the painter.
	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	var snap engine.Snapshot
	if err := loop.Call(stopCtx, func() {
		inst.Stop()
		snap = inst.Snapshot()
	}); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	a.logger.Info("headless run finished",
		zap.Duration("duration", d),
		zap.Int("frames", snap.Stats.Frames),
		zap.Int("spawned", snap.Stats.Spawned),
	)

	st := snap.Stats
	fmt.Fprintf(a.stdout, "headless %s run, %s policy, %gx%g: frames %d, rebuilds %d\n",
		snap.Variant, snap.Policy, snap.Width, snap.Height, st.Frames, st.Rebuilds)
	fmt.Fprintf(a.stdout, "signals: spawned %d, completed %d, faded %d, dropped %d, bursts %d, live %d/%d\n",
		st.Spawned, st.Completed, st.Faded, st.Dropped, st.Bursts, snap.Signals, snap.MaxSignals)

	if out == "" {
		return nil
	}
	img := painter.Image()
	if img == nil {
		return fmt.Errorf("no frame rendered at %dx%d", sc.Width, sc.Height)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := raster.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "wrote %s\n", out)

	return nil
}

// applyConfig re-applies the reloadable settings of cfg to inst.
func applyConfig(inst *engine.Instance, host *engine.BasicHost, cfg config.Config) {
	inst.SetPolicy(cfg.Policy())
	inst.SetDensity(cfg.DensityTier())
	inst.SetSeed(cfg.Seed)
	if cfg.ReducedMotion != inst.Snapshot().Static {
		host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventReducedMotion, Enabled: cfg.ReducedMotion})
	}
}
