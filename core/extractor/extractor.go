// Package extractor unpacks downloaded tar.bz2 archives into a target
// directory, one archive per task, optionally in parallel.
package extractor

import (
	"archive/tar"
	"compress/bzip2"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/rs/xid"

	"github.com/mocapkit/amassget/common/progress"
	"github.com/mocapkit/amassget/core/amass"
)

type Extractor struct {
	reporter progress.Reporter
}

func New(reporter progress.Reporter) *Extractor {
	return &Extractor{reporter: reporter}
}

// FindArchives lists the tar.bz2 archives directly inside dir, in name order.
func (e *Extractor) FindArchives(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var archives []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), amass.ArchiveSuffix) {
			continue
		}
		archives = append(archives, filepath.Join(dir, entry.Name()))
	}
	return archives, nil
}

// ExtractArchive unpacks one archive into outputDir. The tar stream is read
// once, so progress is reported as a member count rather than a percentage.
func (e *Extractor) ExtractArchive(ctx context.Context, archivePath, outputDir string) error {
	name := filepath.Base(archivePath)
	logger := log.FromContext(ctx).With("archive", name, "task", xid.New().String())
	logger.Infof("extracting into %s", outputDir)

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", archivePath, err)
	}
	defer f.Close()

	if err := fileutil.CreateDir(outputDir); err != nil {
		return fmt.Errorf("create %s: %w", outputDir, err)
	}

	tr := tar.NewReader(bzip2.NewReader(f))
	task := e.reporter.Count(name)
	members := 0
	for {
		if err := ctx.Err(); err != nil {
			task.Done(err)
			return err
		}
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			task.Done(err)
			return fmt.Errorf("read %s: %w", archivePath, err)
		}
		if err := writeMember(ctx, outputDir, hdr, tr); err != nil {
			task.Done(err)
			return fmt.Errorf("extract %s: %w", archivePath, err)
		}
		members++
		task.Add(1)
	}
	task.Done(nil)
	logger.Infof("extracted %d members", members)
	return nil
}

// writeMember materializes one tar entry under outputDir. Entries that would
// escape outputDir are rejected; non-file entry types are skipped.
func writeMember(ctx context.Context, outputDir string, hdr *tar.Header, r io.Reader) error {
	target, err := securePath(outputDir, hdr.Name)
	if err != nil {
		return err
	}
	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(target, 0o755)
	case tar.TypeReg:
		if err := fileutil.CreateDir(filepath.Dir(target)); err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, hdr.FileInfo().Mode().Perm())
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, r); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", target, err)
		}
		return out.Close()
	default:
		// Links and special files do not occur in AMASS archives.
		log.FromContext(ctx).Debugf("skipping member %s (type %d)", hdr.Name, hdr.Typeflag)
		return nil
	}
}

func securePath(outputDir, name string) (string, error) {
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("member path escapes output dir: %s", name)
	}
	return filepath.Join(outputDir, cleaned), nil
}
