package downloader

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DownloadAll downloads every configured dataset and returns a per-dataset
// success map. A failing dataset never aborts the others; the caller decides
// the process exit code from the map. Datasets not attempted because the
// context was canceled are left out of the map entirely.
func (d *Downloader) DownloadAll(ctx context.Context) map[string]bool {
	datasets := d.options.Datasets
	results := make(map[string]bool, len(datasets))
	logger := log.FromContext(ctx)

	logger.Infof("downloading %d datasets with %d workers", len(datasets), d.settings.MaxWorkers)

	if d.settings.MaxWorkers <= 1 || len(datasets) == 1 {
		limiter := rate.NewLimiter(rate.Every(d.pause), 1)
		for i, dataset := range datasets {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
			logger.Infof("[%d/%d] %s", i+1, len(datasets), dataset)
			results[dataset] = d.DownloadDataset(ctx, dataset) == nil
		}
		return results
	}

	var (
		mu        sync.Mutex
		completed atomic.Int32
	)
	eg := new(errgroup.Group)
	eg.SetLimit(d.settings.MaxWorkers)
	for _, dataset := range datasets {
		eg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			err := d.DownloadDataset(ctx, dataset)
			mu.Lock()
			results[dataset] = err == nil
			mu.Unlock()

			n := completed.Add(1)
			if err != nil {
				logger.Errorf("[%d/%d] %s: %v", n, len(datasets), dataset, err)
			} else {
				logger.Infof("[%d/%d] %s: done", n, len(datasets), dataset)
			}
			return nil
		})
	}
	eg.Wait()
	return results
}
