package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/normalmap"
	"github.com/gogpu/normalmap/internal/asset"
	"github.com/gogpu/normalmap/internal/image"
)

// ErrOutputConflict is returned for a material whose output path is already
// used by another material of the same run.
var ErrOutputConflict = errors.New("batch: output path conflict")

// Options configures a Driver.
type Options struct {
	// Concurrency is the number of images processed at once. Values below
	// 1 mean 1.
	Concurrency int

	// OutputDir receives the normal maps. Empty means the manifest's
	// directory; relative paths resolve against it.
	OutputDir string

	// Suffix is appended to the material name to form the file name.
	Suffix string

	// Encode selects the output file format and bit depth.
	Encode image.EncodeOptions

	// CacheSize bounds the decoded texture cache. Zero uses
	// asset.DefaultCacheSize.
	CacheSize int

	// DryRun reports what would be generated without reading or writing
	// textures.
	DryRun bool

	// Progress, if set, is called after each material. Calls are
	// serialized and Done increases by one each time.
	Progress func(Progress)

	// Logger receives batch logs. Nil uses normalmap.Logger().
	Logger *slog.Logger
}

// Driver applies a Generator to the eligible materials of manifests.
type Driver struct {
	gen  *normalmap.Generator
	sel  *Selector
	opts Options
}

// NewDriver returns a Driver. gen is shared by all images of a run and is
// not closed by the Driver.
func NewDriver(gen *normalmap.Generator, sel *Selector, opts Options) *Driver {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Suffix == "" {
		opts.Suffix = "_normal"
	}
	return &Driver{gen: gen, sel: sel, opts: opts}
}

// Run processes the materials of m in m.Unique order. Ineligible
// materials are skipped. A material whose output file name is already taken
// by an earlier material fails with ErrOutputConflict. Failures of single
// materials are logged, recorded in the Report and do not stop the run.
//
// Generated materials have their normal slot updated in m; saving the
// manifest is left to the caller. When ctx is canceled no new material is
// started and Run returns the partial Report with ctx.Err().
func (d *Driver) Run(ctx context.Context, m *asset.Manifest) (Report, error) {
	start := time.Now()
	order := m.Unique()
	report := Report{
		RunID: uuid.New().String(),
		Total: len(order),
	}

	log := d.opts.Logger
	if log == nil {
		log = normalmap.Logger()
	}
	log = log.With("run", report.RunID)
	log.Info("batch started",
		"materials", report.Total,
		"concurrency", d.opts.Concurrency,
		"dry_run", d.opts.DryRun)

	src := asset.NewSource(m, d.opts.CacheSize)
	sink := asset.NewSink(m, d.opts.OutputDir, d.opts.Suffix, d.opts.Encode)

	results := make([]Result, len(m.Materials))
	reached := make([]bool, len(m.Materials))

	// Output paths already taken, mapped to the material that owns them.
	claimed := make(map[string]string)

	var mu sync.Mutex
	done := 0
	finish := func(i int, res Result) {
		results[i] = res
		mu.Lock()
		defer mu.Unlock()
		reached[i] = true
		done++
		if d.opts.Progress != nil {
			d.opts.Progress(Progress{
				Done:     done,
				Total:    report.Total,
				Material: res.Material,
				Outcome:  res.Outcome,
			})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Concurrency)

	for _, i := range order {
		if gctx.Err() != nil {
			break
		}

		name := m.Materials[i].Name
		if !d.sel.Match(name) {
			log.Debug("material skipped", "material", name)
			finish(i, Result{Material: name, Outcome: Skipped})
			continue
		}

		out := sink.Path(m.Materials[i])
		if owner, ok := claimed[out]; ok {
			err := fmt.Errorf("%w: %s is also the output of %s", ErrOutputConflict, out, owner)
			log.Warn("material failed", "material", name, "err", err)
			finish(i, Result{Material: name, Outcome: Failed, Err: err})
			continue
		}
		claimed[out] = name

		if d.opts.DryRun {
			finish(i, Result{Material: name, Outcome: Planned, Output: out})
			continue
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			mat := &m.Materials[i]
			path, err := d.process(src, sink, mat)
			if err != nil {
				log.Warn("material failed", "material", mat.Name, "err", err)
				finish(i, Result{Material: mat.Name, Outcome: Failed, Err: err})
				return nil
			}
			log.Debug("material generated", "material", mat.Name, "output", path)
			finish(i, Result{Material: mat.Name, Outcome: Generated, Output: path})
			return nil
		})
	}
	_ = g.Wait()

	for i, ok := range reached {
		if !ok {
			continue
		}
		res := results[i]
		report.Results = append(report.Results, res)
		if res.Outcome == Failed {
			report.Failed = append(report.Failed, Failure{Material: res.Material, Err: res.Err})
		}
	}
	report.Elapsed = time.Since(start)

	stats := src.Stats()
	log.Info("batch finished",
		"generated", report.Count(Generated),
		"planned", report.Count(Planned),
		"skipped", report.Count(Skipped),
		"failed", len(report.Failed),
		"texture_cache_hits", stats.Hits,
		"elapsed", report.Elapsed)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// process generates and stores the normal map of one material.
func (d *Driver) process(src *asset.Source, sink *asset.Sink, mat *asset.Material) (string, error) {
	base, err := src.BaseColor(*mat)
	if err != nil {
		return "", err
	}

	pix, err := d.gen.Generate(base.Pix, base.Width, base.Height)
	if err != nil {
		return "", fmt.Errorf("generate %s: %w", mat.Name, err)
	}

	out, err := image.WrapFloatImage(pix, base.Width, base.Height)
	if err != nil {
		return "", err
	}
	return sink.Store(mat, out)
}
