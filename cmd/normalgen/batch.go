package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/normalmap"
	"github.com/gogpu/normalmap/internal/asset"
	"github.com/gogpu/normalmap/internal/batch"
	"github.com/gogpu/normalmap/internal/config"
)

type batchFlags struct {
	configPath  string
	outDir      string
	concurrency int
	watch       bool
	dryRun      bool
	categories  []string
	strength    float64
	flip        bool
	convention  string
	format      string
	bitDepth    int
	workers     int
}

func batchCmd(logLevel, logFile *string) *cobra.Command {
	var f batchFlags

	cmd := &cobra.Command{
		Use:   "batch <manifest>",
		Short: "Generate normal maps for every eligible material of a manifest",
		Long: "Processes each material whose name contains one of the configured categories, " +
			"writes its normal map and points the material's normal slot at it. " +
			"Failures of single materials are reported and do not stop the batch.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadBatchConfig(cmd, &f)
			if err != nil {
				return err
			}

			closeLog, err := setupLogging(cfg.Logging, *logLevel, *logFile)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			sel, err := batch.NewSelector(cfg.SelectedCategories())
			if err != nil {
				return err
			}

			gen, err := normalmap.NewGenerator(cfg.GeneratorOptions()...)
			if err != nil {
				return err
			}
			defer gen.Close()

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			driver := batch.NewDriver(gen, sel, batch.Options{
				Concurrency: cfg.Concurrency,
				OutputDir:   cfg.Output.Dir,
				Suffix:      cfg.Output.Suffix,
				Encode:      cfg.EncodeOptions(),
				DryRun:      f.dryRun,
				Progress: func(p batch.Progress) {
					fmt.Fprintf(errOut, "[%d/%d] %s %s\n", p.Done, p.Total, p.Material, p.Outcome)
				},
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			manifestPath := args[0]
			runOnce := func(ctx context.Context) error {
				return runBatch(ctx, driver, manifestPath, f.dryRun, out)
			}

			if !f.watch {
				return runOnce(ctx)
			}
			err = batch.Watch(ctx, manifestPath, runOnce, batch.WatchOptions{})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	fl.StringVarP(&f.outDir, "out-dir", "o", "", "Output directory (default: next to the manifest)")
	fl.IntVarP(&f.concurrency, "concurrency", "j", 1, "Images processed at once")
	fl.BoolVarP(&f.watch, "watch", "w", false, "Re-run when the manifest or its textures change")
	fl.BoolVarP(&f.dryRun, "dry-run", "n", false, "List what would be generated without writing")
	fl.StringSliceVar(&f.categories, "categories", nil, "Material name fragments to process (default SKIN,CLOTH,HAIR)")
	fl.Float64Var(&f.strength, "strength", normalmap.DefaultStrength, "Gradient amplification in [0.1, 10]")
	fl.BoolVar(&f.flip, "flip", false, "Invert the relief")
	fl.StringVar(&f.convention, "convention", "directx", "Green channel convention: directx or opengl")
	fl.StringVar(&f.format, "format", "png", "Output format: png, tiff or bmp")
	fl.IntVar(&f.bitDepth, "bit-depth", 8, "Bits per channel: 8 or 16 (png, tiff)")
	fl.IntVar(&f.workers, "workers", 0, "Goroutines per image, 0 for all CPUs")
	return cmd
}

// loadBatchConfig reads the config file (or defaults plus environment) and
// applies the flags the user set explicitly.
func loadBatchConfig(cmd *cobra.Command, f *batchFlags) (*config.Config, error) {
	var cfg *config.Config
	if f.configPath != "" {
		c, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		cfg = config.Default()
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("out-dir") {
		cfg.Output.Dir = f.outDir
	}
	if fl.Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if fl.Changed("categories") {
		cfg.Categories = f.categories
	}
	if fl.Changed("strength") {
		cfg.Strength = f.strength
	}
	if fl.Changed("flip") {
		cfg.Flip = f.flip
	}
	if fl.Changed("convention") {
		cfg.Convention = f.convention
	}
	if fl.Changed("format") {
		cfg.Output.Format = f.format
	}
	if fl.Changed("bit-depth") {
		cfg.Output.BitDepth = f.bitDepth
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runBatch loads the manifest, runs the driver, saves the updated manifest
// and prints a summary. It fails when any material failed.
func runBatch(ctx context.Context, d *batch.Driver, manifestPath string, dryRun bool, out io.Writer) error {
	m, err := asset.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	report, runErr := d.Run(ctx, m)

	if !dryRun && report.Count(batch.Generated) > 0 {
		if err := asset.SaveManifest(manifestPath, m); err != nil {
			return err
		}
	}

	printSummary(out, &report, dryRun)

	if runErr != nil {
		return runErr
	}
	if n := len(report.Failed); n > 0 {
		return fmt.Errorf("%d of %d materials failed", n, report.Total)
	}
	return nil
}

func printSummary(out io.Writer, r *batch.Report, dryRun bool) {
	if dryRun {
		for _, res := range r.Results {
			if res.Outcome == batch.Planned {
				fmt.Fprintf(out, "would write %s\n", res.Output)
			}
		}
	}
	for _, f := range r.Failed {
		fmt.Fprintf(out, "failed: %v\n", f)
	}
	fmt.Fprintf(out, "generated %d, planned %d, skipped %d, failed %d of %d materials (run %s, %s)\n",
		r.Count(batch.Generated), r.Count(batch.Planned), r.Count(batch.Skipped), len(r.Failed),
		r.Total, r.RunID, r.Elapsed.Round(time.Millisecond))
}
