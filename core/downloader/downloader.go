// Package downloader fetches AMASS dataset archives over authenticated HTTP
// with bounded retries and a configurable worker pool.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/xid"

	"github.com/mocapkit/amassget/common/progress"
	"github.com/mocapkit/amassget/common/utils/fsutil"
	"github.com/mocapkit/amassget/common/utils/ioutil"
	"github.com/mocapkit/amassget/config"
	"github.com/mocapkit/amassget/core/amass"
	"github.com/mocapkit/amassget/pkg/retrypolicy"
)

const (
	// retryStep is the base of the linear backoff: attempt n waits n*retryStep.
	retryStep = 5 * time.Second
	// sequentialPause spaces out requests in single-worker mode so the
	// portal is not hammered.
	sequentialPause = 2 * time.Second
	// chunkSize is the copy buffer used when streaming a response to disk.
	chunkSize = 8 * 1024
)

// ErrAuth marks an authentication rejection (HTTP 401/403 or an HTML login
// page served in place of the archive). Auth failures are never retried.
var ErrAuth = errors.New("authentication rejected, refresh the session cookies")

// Downloader downloads dataset archives. All fields are set at construction
// and never mutated, so a single Downloader is safe for concurrent use.
type Downloader struct {
	settings config.DownloadSettings
	options  config.DownloadOptions
	cookies  []*http.Cookie
	client   *http.Client
	reporter progress.Reporter

	endpoint  string
	retryStep time.Duration
	pause     time.Duration
}

func New(cfg *config.Config, cookies []*http.Cookie, reporter progress.Reporter) *Downloader {
	return &Downloader{
		settings: cfg.DownloadSettings,
		options:  cfg.DownloadOptions,
		cookies:  cookies,
		client: &http.Client{
			Timeout: cfg.DownloadSettings.RequestTimeout(),
		},
		reporter:  reporter,
		endpoint:  amass.DownloadEndpoint,
		retryStep: retryStep,
		pause:     sequentialPause,
	}
}

// DownloadDataset downloads one dataset archive into the output directory.
// It is a no-op returning nil when the destination file already exists.
func (d *Downloader) DownloadDataset(ctx context.Context, dataset string) error {
	logger := log.FromContext(ctx).With("dataset", dataset, "task", xid.New().String())

	if !amass.IsKnownDataset(dataset) {
		logger.Warnf("%q is not in the known dataset catalog, trying anyway", dataset)
	}

	url := amass.DownloadURLFrom(d.endpoint, dataset, d.options.BodyModel, d.options.Gender)
	filename := amass.LocalFilename(dataset, d.options.BodyModel, d.options.Gender)
	destPath := filepath.Join(d.settings.OutputDir, filename)

	if _, err := os.Stat(destPath); err == nil {
		logger.Infof("already downloaded, skipping: %s", destPath)
		return nil
	}

	logger.Debugf("download url: %s", url)

	attempt := 0
	op := func() error {
		attempt++
		logger.Infof("downloading (attempt %d/%d): %s", attempt, d.settings.MaxRetries, filename)
		err := d.fetch(ctx, url, destPath, filename)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrAuth) {
			return backoff.Permanent(err)
		}
		logger.Warnf("attempt %d failed: %v", attempt, err)
		return err
	}
	if err := retrypolicy.Do(ctx, d.settings.MaxRetries, d.retryStep, op); err != nil {
		return fmt.Errorf("download %s: %w", dataset, err)
	}
	logger.Infof("downloaded: %s", destPath)
	return nil
}

// fetch performs one GET attempt, streaming the body to destPath via a
// temporary .part file that is renamed into place only on success.
func (d *Downloader) fetch(ctx context.Context, url, destPath, label string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", amass.UserAgent)
	for _, c := range d.cookies {
		req.AddCookie(c)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("status %s: %w", resp.Status, ErrAuth)
	default:
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	partPath := destPath + ".part"
	part, err := fsutil.CreateFile(partPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", partPath, err)
	}

	task := d.reporter.Bytes(label, resp.ContentLength)
	wr := ioutil.NewProgressWriter(part, func(n int) {
		task.Add(int64(n))
	})
	buf := make([]byte, chunkSize)
	_, err = io.CopyBuffer(wr, resp.Body, buf)
	task.Done(err)
	if err != nil {
		if rmErr := part.CloseAndRemove(); rmErr != nil {
			log.FromContext(ctx).Errorf("failed to clean up %s: %v", partPath, rmErr)
		}
		return fmt.Errorf("write body: %w", err)
	}
	if err := part.Close(); err != nil {
		return fmt.Errorf("close %s: %w", partPath, err)
	}

	// The portal answers 200 with its login page when the session cookies
	// are stale; an HTML payload under an archive name is an auth failure.
	if mt, err := mimetype.DetectFile(partPath); err == nil && mt.Is("text/html") {
		os.Remove(partPath)
		return fmt.Errorf("received an HTML page instead of an archive: %w", ErrAuth)
	}

	if err := os.Rename(partPath, destPath); err != nil {
		return fmt.Errorf("finalize %s: %w", destPath, err)
	}
	return nil
}
