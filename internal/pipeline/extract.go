package pipeline

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nextseqstats/internal/ingest"
	"nextseqstats/internal/runtime"
	"nextseqstats/pkg/api"
)

// extractAll runs ExtractRun over dirs with at most workers in flight.
// Results keep the order of dirs. The first failure cancels the remaining
// folders and is returned.
func extractAll(ctx context.Context, dirs []string, workers int, maxBytes int64, log *zap.Logger, counter *runtime.ByteCounter) ([]api.Record, error) {
	results := make([]ingest.Result, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, dir := range dirs {
		if gctx.Err() != nil {
			break
		}
		i, dir := i, dir
		g.Go(func() error {
			res, err := ingest.ExtractRun(gctx, dir, maxBytes)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup only reports goroutine errors; a cancelled parent may have
	// stopped the loop before every folder was scheduled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]api.Record, 0, len(results))
	for i, res := range results {
		for _, w := range res.Warnings {
			log.Debug(filepath.Base(dirs[i]) + ": " + w)
		}
		counter.Add(res.BytesRead)
		records = append(records, res.Record)
	}
	return records, nil
}
