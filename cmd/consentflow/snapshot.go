package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/consentflow/config"
	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/engine"
	"github.com/katalvlaran/consentflow/paint/raster"
	"github.com/katalvlaran/consentflow/scheduler"
)

// snapshotFrame is the simulated frame step of advanced snapshots.
const snapshotFrame = time.Second / 60

type snapshotJob struct {
	out    string
	policy core.Policy
}

func (a *app) snapshotCmd() *cobra.Command {
	var (
		out         string
		width       int
		height      int
		frames      int
		dpr         float64
		allPolicies bool
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames to PNG",
		Long: `Renders the animation offscreen. With --frames 0 the static reduced-motion
frame is written; otherwise the animation is advanced that many 60 Hz frames
first. --all-policies writes one file per consent policy, suffixed with the
policy name, rendered concurrently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("width") {
				a.cfg.Snapshot.Width = width
			}
			if flags.Changed("height") {
				a.cfg.Snapshot.Height = height
			}
			if flags.Changed("frames") {
				a.cfg.Snapshot.Frames = frames
			}
			if flags.Changed("dpr") {
				a.cfg.Snapshot.DPR = dpr
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			jobs := []snapshotJob{{out: out, policy: a.cfg.Policy()}}
			if allPolicies {
				jobs = jobs[:0]
				for _, p := range core.Policies {
					jobs = append(jobs, snapshotJob{out: suffixed(out, p.String()), policy: p})
				}
			}
			return a.snapshots(cmd.Context(), jobs)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "frame.png", "output PNG path")
	f.IntVar(&width, "width", 1280, "logical width in pixels")
	f.IntVar(&height, "height", 720, "logical height in pixels")
	f.IntVar(&frames, "frames", 0, "frames to advance before capturing (0 = static frame)")
	f.Float64Var(&dpr, "dpr", 1, "device pixel ratio, clamped to 2")
	f.BoolVar(&allPolicies, "all-policies", false, "write one file per consent policy")

	return cmd
}

// suffixed inserts "-tag" before the extension of path.
func suffixed(path, tag string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + tag + ext
}

func (a *app) snapshots(ctx context.Context, jobs []snapshotJob) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := renderSnapshot(a.cfg, job, a.logger); err != nil {
				return fmt.Errorf("snapshot %s: %w", job.policy, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, job := range jobs {
		fmt.Fprintf(a.stdout, "wrote %s (%s)\n", job.out, job.policy)
	}

	return nil
}

// renderSnapshot runs one instance on a manual scheduler and writes the
// final frame.
func renderSnapshot(cfg config.Config, job snapshotJob, logger *zap.Logger) error {
	sc := cfg.Snapshot
	painter := raster.New(min(sc.DPR, cfg.VariantKind().MaxDPR()))
	sched := scheduler.NewManual()
	host := engine.NewBasicHost(engine.Bounds{Width: float64(sc.Width), Height: float64(sc.Height)}, painter, sched)

	opts := append(cfg.EngineOptions(logger),
		engine.WithPolicy(job.policy),
		engine.WithReducedMotion(sc.Frames == 0),
		engine.WithInteractive(false),
	)
	inst, err := engine.New(host, opts...)
	if err != nil {
		return err
	}
	if err := inst.Start(); err != nil {
		return err
	}
	defer inst.Stop()

	for k := 0; k < sc.Frames; k++ {
		sched.Step(snapshotFrame)
	}
	img := painter.Image()
	if img == nil {
		return fmt.Errorf("no frame rendered at %dx%d", sc.Width, sc.Height)
	}

	f, err := os.Create(job.out)
	if err != nil {
		return err
	}
	if err := raster.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
