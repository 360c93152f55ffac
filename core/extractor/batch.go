package extractor

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ExtractAll unpacks every archive found in inputDir into outputDir. It
// returns the discovered archives in scan order plus a per-archive success
// map keyed by path. With deleteAfter set, each successfully extracted
// archive is removed; removal failures are logged and do not flip the
// result. One archive failing never aborts the others. Archives not
// attempted because the context was canceled are left out of the map.
func (e *Extractor) ExtractAll(ctx context.Context, inputDir, outputDir string, workers int, deleteAfter bool) ([]string, map[string]bool, error) {
	logger := log.FromContext(ctx)

	archives, err := e.FindArchives(inputDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("found %d archives in %s", len(archives), inputDir)
	if len(archives) == 0 {
		logger.Warn("nothing to extract")
		return nil, map[string]bool{}, nil
	}

	results := make(map[string]bool, len(archives))

	if workers <= 1 {
		for i, archive := range archives {
			if ctx.Err() != nil {
				break
			}
			logger.Infof("[%d/%d] %s", i+1, len(archives), filepath.Base(archive))
			err := e.ExtractArchive(ctx, archive, outputDir)
			results[archive] = err == nil
			if err != nil {
				logger.Errorf("extract %s: %v", filepath.Base(archive), err)
				continue
			}
			if deleteAfter {
				removeArchive(ctx, archive)
			}
		}
		return archives, results, nil
	}

	logger.Infof("extracting with %d workers", workers)
	var (
		mu        sync.Mutex
		completed atomic.Int32
	)
	eg := new(errgroup.Group)
	eg.SetLimit(workers)
	for _, archive := range archives {
		eg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			err := e.ExtractArchive(ctx, archive, outputDir)
			mu.Lock()
			results[archive] = err == nil
			mu.Unlock()

			n := completed.Add(1)
			if err != nil {
				logger.Errorf("[%d/%d] %s: %v", n, len(archives), filepath.Base(archive), err)
				return nil
			}
			logger.Infof("[%d/%d] %s: done", n, len(archives), filepath.Base(archive))
			if deleteAfter {
				removeArchive(ctx, archive)
			}
			return nil
		})
	}
	eg.Wait()
	return archives, results, nil
}

// removeArchive deletes an extracted source archive, best effort.
func removeArchive(ctx context.Context, archive string) {
	logger := log.FromContext(ctx)
	if err := os.Remove(archive); err != nil {
		logger.Errorf("failed to delete %s: %v", archive, err)
		return
	}
	logger.Infof("deleted source archive: %s", archive)
}
