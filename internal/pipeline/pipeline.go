package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/forest-guardian/sentinel-vision-poc/internal/cache"
	"github.com/forest-guardian/sentinel-vision-poc/internal/composite"
	"github.com/forest-guardian/sentinel-vision-poc/internal/enhance"
	"github.com/forest-guardian/sentinel-vision-poc/internal/index"
	"github.com/forest-guardian/sentinel-vision-poc/internal/raster"
	"github.com/forest-guardian/sentinel-vision-poc/internal/utils"
)

// IndexRequest names one normalized-difference index by the band pair that
// produces it.
type IndexRequest struct {
	Name  string
	BandA string
	BandB string
}

// DefaultIndexes is the index family computed for Sentinel-2 products.
var DefaultIndexes = []IndexRequest{
	{Name: "ndvi", BandA: "B08", BandB: "B04"},
	{Name: "ndre", BandA: "B08", BandB: "B05"},
	{Name: "ndmi", BandA: "B08", BandB: "B11"},
}

type IndexResult struct {
	Name  string
	BandA string
	BandB string
	Grid  raster.Grid
	Stats index.Statistics
}

type Options struct {
	Percentile       *float64 // percentile stretch clip; nil selects the 2.0 default
	VignetteStrength float64  // 0 disables the vignette
}

type Result struct {
	Composite *composite.Image
	Indexes   []IndexResult
}

// Pipeline runs the visual and index pipelines over one product's band
// files. Index statistics are cached on disk keyed by the band file paths.
type Pipeline struct {
	statsCache *cache.FileCache[index.Statistics]
}

func New() *Pipeline {
	return &Pipeline{
		statsCache: cache.NewFileCache[index.Statistics]("index_stats"),
	}
}

// DecodeBands decodes the first band plane of each file in paths (band id →
// file path), one cancellable task per band. All decoded grids must share
// one pixel grid; a product mixing resolution tiers is rejected. Peak
// memory is the sum of all decoded grids, roughly rows*cols*8 bytes each.
func DecodeBands(ctx context.Context, paths map[string]string) (map[string]raster.Grid, error) {
	var (
		mu          sync.Mutex
		grids       = make(map[string]raster.Grid, len(paths))
		progressBar = progressbar.Default(int64(len(paths)), "Decoding bands")
	)

	g, ctx := errgroup.WithContext(ctx)
	for id, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			grid, _, err := raster.DecodeFile(path, 1)
			if err != nil {
				return fmt.Errorf("failed to decode band %s: %w", id, err)
			}
			mu.Lock()
			grids[id] = grid
			progressBar.Add(1)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(grids) == 0 {
		return nil, fmt.Errorf("no bands to decode")
	}

	ids := utils.SortedKeys(grids)
	first := grids[ids[0]]
	for _, id := range ids[1:] {
		if !first.SameShape(grids[id]) {
			return nil, fmt.Errorf("%w: band %s does not match band %s", raster.ErrShapeMismatch, id, ids[0])
		}
	}
	return grids, nil
}

// BuildComposite turns three decoded bands into a viewable RGB image:
// per-channel percentile stretch, interleave, then an optional vignette.
// The enhanced channels are released as soon as the stack is built.
func BuildComposite(red, green, blue raster.Grid, opts Options) (*composite.Image, error) {
	percentile := enhance.DefaultPercentile
	if opts.Percentile != nil {
		percentile = *opts.Percentile
	}

	channels := make([]enhance.Grid, 3)
	for i, grid := range []raster.Grid{red, green, blue} {
		stretched, err := enhance.Stretch(grid, percentile)
		if err != nil {
			return nil, err
		}
		channels[i] = stretched
	}

	img, err := composite.Stack(channels[0], channels[1], channels[2])
	if err != nil {
		return nil, err
	}

	if opts.VignetteStrength != 0 {
		if err := composite.Vignette(img, opts.VignetteStrength); err != nil {
			// The stacked image is still valid, hand it back untouched.
			return img, err
		}
	}
	return img, nil
}

// ComputeIndexes evaluates every requested index over the decoded bands,
// one worker per core. Statistics come from the cache when the same band
// files were summarized before.
func (p *Pipeline) ComputeIndexes(grids map[string]raster.Grid, paths map[string]string, requests []IndexRequest) ([]IndexResult, error) {
	var (
		mu       sync.Mutex
		results  = make([]IndexResult, len(requests))
		firstErr error
		once     sync.Once
	)

	wp := workerpool.New(runtime.NumCPU())
	for i, req := range requests {
		wp.Submit(func() {
			result, err := p.computeIndex(grids, paths, req)
			if err != nil {
				once.Do(func() { firstErr = err })
				return
			}
			mu.Lock()
			results[i] = result
			mu.Unlock()
		})
	}
	wp.StopWait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

func (p *Pipeline) computeIndex(grids map[string]raster.Grid, paths map[string]string, req IndexRequest) (IndexResult, error) {
	bandA, ok := grids[req.BandA]
	if !ok {
		return IndexResult{}, fmt.Errorf("index %s needs band %s which was not decoded", req.Name, req.BandA)
	}
	bandB, ok := grids[req.BandB]
	if !ok {
		return IndexResult{}, fmt.Errorf("index %s needs band %s which was not decoded", req.Name, req.BandB)
	}

	grid, err := index.Compute(bandA, bandB)
	if err != nil {
		return IndexResult{}, fmt.Errorf("failed to compute %s: %w", req.Name, err)
	}

	result := IndexResult{Name: req.Name, BandA: req.BandA, BandB: req.BandB, Grid: grid}

	key := p.statsCache.GenerateKey(paths[req.BandA], paths[req.BandB], req.Name)
	if stats, ok := p.statsCache.Get(key); ok {
		result.Stats = stats
		return result, nil
	}

	stats, err := index.Summarize(grid)
	if err != nil {
		return IndexResult{}, fmt.Errorf("failed to summarize %s: %w", req.Name, err)
	}
	if err := p.statsCache.Set(key, stats); err != nil {
		fmt.Printf("Warning: failed to cache %s statistics: %v\n", req.Name, err)
	}
	result.Stats = stats
	return result, nil
}

// Run executes both pipelines over the located band files: decode every
// band named by the composite channels and the index requests, build the
// composite, then compute the index family.
func (p *Pipeline) Run(ctx context.Context, paths map[string]string, red, green, blue string, requests []IndexRequest, opts Options) (*Result, error) {
	needed := map[string]string{}
	for _, id := range []string{red, green, blue} {
		path, ok := paths[id]
		if !ok {
			return nil, fmt.Errorf("no file located for band %s", id)
		}
		needed[id] = path
	}
	for _, req := range requests {
		for _, id := range []string{req.BandA, req.BandB} {
			path, ok := paths[id]
			if !ok {
				return nil, fmt.Errorf("no file located for band %s", id)
			}
			needed[id] = path
		}
	}

	grids, err := DecodeBands(ctx, needed)
	if err != nil {
		return nil, err
	}

	img, err := BuildComposite(grids[red], grids[green], grids[blue], opts)
	if err != nil {
		if img != nil {
			// The stack survived a failed post-processing step.
			return &Result{Composite: img}, err
		}
		return nil, err
	}

	indexes, err := p.ComputeIndexes(grids, needed, requests)
	if err != nil {
		// The composite survived, return it alongside the failure.
		return &Result{Composite: img}, err
	}
	return &Result{Composite: img, Indexes: indexes}, nil
}
