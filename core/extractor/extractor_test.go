package extractor_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mocapkit/amassget/common/progress"
	"github.com/mocapkit/amassget/core/extractor"
)

func newExtractor() *extractor.Extractor {
	return extractor.New(progress.NewPlain(io.Discard))
}

func copyFixture(t *testing.T, name, dstDir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dstDir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return dst
}

func writeCorrupt(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("this is not a bzip2 stream"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindArchives(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, "sample.tar.bz2", dir)
	writeCorrupt(t, dir, "other.tar.bz2")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.tar.bz2.d"), 0o755); err != nil {
		t.Fatal(err)
	}

	archives, err := newExtractor().FindArchives(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) != 2 {
		t.Fatalf("got %d archives; want 2: %v", len(archives), archives)
	}
	if filepath.Base(archives[0]) != "other.tar.bz2" || filepath.Base(archives[1]) != "sample.tar.bz2" {
		t.Errorf("unexpected scan order: %v", archives)
	}
}

func TestFindArchivesMissingDir(t *testing.T) {
	if _, err := newExtractor().FindArchives(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestExtractArchive(t *testing.T) {
	dir := t.TempDir()
	archive := copyFixture(t, "sample.tar.bz2", dir)
	outDir := filepath.Join(dir, "out")

	if err := newExtractor().ExtractArchive(context.Background(), archive, outDir); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path    string
		content string
	}{
		{"ACCAD/Female1General_c3d/A1_stageii.npz", "npz-bytes-1"},
		{"ACCAD/Female1General_c3d/A2_stageii.npz", "npz-bytes-2"},
		{"ACCAD/LICENSE.txt", "license text\n"},
	}
	for _, tc := range tests {
		data, err := os.ReadFile(filepath.Join(outDir, tc.path))
		if err != nil {
			t.Errorf("member %s: %v", tc.path, err)
			continue
		}
		if string(data) != tc.content {
			t.Errorf("member %s = %q; want %q", tc.path, data, tc.content)
		}
	}
}

func TestExtractArchiveCorrupt(t *testing.T) {
	dir := t.TempDir()
	archive := writeCorrupt(t, dir, "broken.tar.bz2")

	if err := newExtractor().ExtractArchive(context.Background(), archive, filepath.Join(dir, "out")); err == nil {
		t.Fatal("expected error for corrupt archive")
	}
}

func TestExtractArchiveRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := copyFixture(t, "traversal.tar.bz2", dir)
	outDir := filepath.Join(dir, "out")

	if err := newExtractor().ExtractArchive(context.Background(), archive, outDir); err == nil {
		t.Fatal("expected error for a member escaping the output dir")
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); !os.IsNotExist(err) {
		t.Error("traversal member was written outside the output dir")
	}
}

func TestExtractAllOneCorrupt(t *testing.T) {
	for _, workers := range []int{1, 2} {
		dir := t.TempDir()
		good := copyFixture(t, "sample.tar.bz2", dir)
		bad := writeCorrupt(t, dir, "broken.tar.bz2")
		outDir := filepath.Join(dir, "out")

		archives, results, err := newExtractor().ExtractAll(context.Background(), dir, outDir, workers, false)
		if err != nil {
			t.Fatal(err)
		}
		if len(archives) != 2 || len(results) != 2 {
			t.Fatalf("workers=%d: got %d archives, %d results; want 2, 2", workers, len(archives), len(results))
		}
		if !results[good] {
			t.Errorf("workers=%d: intact archive reported failure", workers)
		}
		if results[bad] {
			t.Errorf("workers=%d: corrupt archive reported success", workers)
		}
	}
}

func TestExtractAllCanceledContextSkips(t *testing.T) {
	for _, workers := range []int{1, 2} {
		dir := t.TempDir()
		copyFixture(t, "sample.tar.bz2", dir)
		writeCorrupt(t, dir, "broken.tar.bz2")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		archives, results, err := newExtractor().ExtractAll(ctx, dir, filepath.Join(dir, "out"), workers, false)
		if err != nil {
			t.Fatal(err)
		}
		if len(archives) != 2 {
			t.Fatalf("workers=%d: got %d archives; want 2", workers, len(archives))
		}
		if len(results) != 0 {
			t.Errorf("workers=%d: got %d results; want none for unattempted archives", workers, len(results))
		}
	}
}

func TestExtractAllEmptyDir(t *testing.T) {
	archives, results, err := newExtractor().ExtractAll(context.Background(), t.TempDir(), t.TempDir(), 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) != 0 || len(results) != 0 {
		t.Fatalf("got %d archives, %d results; want none", len(archives), len(results))
	}
}

func TestExtractAllDeleteAfterExtract(t *testing.T) {
	dir := t.TempDir()
	good := copyFixture(t, "sample.tar.bz2", dir)
	bad := writeCorrupt(t, dir, "broken.tar.bz2")

	_, results, err := newExtractor().ExtractAll(context.Background(), dir, filepath.Join(dir, "out"), 1, true)
	if err != nil {
		t.Fatal(err)
	}
	if !results[good] || results[bad] {
		t.Fatalf("unexpected results: %v", results)
	}
	if _, err := os.Stat(good); !os.IsNotExist(err) {
		t.Error("successfully extracted archive was not deleted")
	}
	if _, err := os.Stat(bad); err != nil {
		t.Error("failed archive must never be deleted")
	}
}
