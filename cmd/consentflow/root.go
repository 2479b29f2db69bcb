package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/consentflow/builder"
	"github.com/katalvlaran/consentflow/config"
	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/profile"
)

// app carries flags and shared state for one command execution.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	logFile    string

	seed    int64
	density string
	consent string
	variant string

	cfg    config.Config
	logger *zap.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:   "consentflow",
		Short: "Consent-aware network animation",
		Long: `consentflow synthesizes a seeded network of sources, a policy core and
destinations, routes traffic under a consent policy and animates it.

Configuration comes from --config (YAML or TOML) with flags on top.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "configuration file (.yaml, .yml or .toml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&a.logFile, "log-file", "", "write logs to this file")
	pf.Int64Var(&a.seed, "seed", 42, "layout seed")
	pf.StringVar(&a.density, "density", "medium", "density tier: low, medium or high")
	pf.StringVar(&a.consent, "consent", "mixed", "consent policy: granted, mixed or denied")
	pf.StringVar(&a.variant, "variant", "consent", "animation variant: consent or backdrop")

	root.AddCommand(a.runCmd(), a.snapshotCmd(), a.routesCmd(), a.graphCmd())

	return root
}

// loadConfig reads --config, then applies explicitly set flags.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("density") {
		cfg.Density = a.density
	}
	if flags.Changed("consent") {
		cfg.Consent = a.consent
	}
	if flags.Changed("variant") {
		cfg.Variant = a.variant
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	return nil
}

// initLogger builds a production zap logger. Without --log-file logs go to
// stderr, except for the terminal UI which owns the screen.
func (a *app) initLogger() error {
	zc := zap.NewProductionConfig()
	if a.cfg.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if a.logFile != "" {
		zc.OutputPaths = []string{a.logFile}
		zc.ErrorOutputPaths = []string{a.logFile}
	}

	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	return nil
}

// buildGraph synthesizes the network the CLI inspects, keyed the same way
// the engine keys it.
func (a *app) buildGraph(width, height float64) (*core.Graph, profile.RuntimeConfig, error) {
	env := profile.Environment{Width: width, Height: height}
	rc := profile.Resolve(env, a.cfg.DensityTier())
	seed := builder.NetworkSeed(a.cfg.Seed, int(width), int(height), rc.IsMobile)
	g, err := builder.BuildWithConfig(width, height, rc, seed, builder.WithLogger(a.logger))
	if err != nil {
		return nil, rc, err
	}

	return g, rc, nil
}
