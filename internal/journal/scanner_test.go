package journal

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDir_CollectsJournalFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2024-01-01.txt"), "went hiking")
	writeFile(t, filepath.Join(dir, "2024", "01", "02.org"), "stayed home")
	writeFile(t, filepath.Join(dir, "notes.md"), "misc")
	writeFile(t, filepath.Join(dir, "photo.jpg"), "binary")
	writeFile(t, filepath.Join(dir, "data.json"), "{}")

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("got %d files, want 3: %+v", len(files), files)
	}
	for _, f := range files {
		if f.MTimeUnix == 0 {
			t.Errorf("%s: missing mtime", f.Path)
		}
	}
	// Sorted by path.
	for i := 1; i < len(files); i++ {
		if files[i-1].Path > files[i].Path {
			t.Errorf("files not sorted: %s > %s", files[i-1].Path, files[i].Path)
		}
	}
}

func TestScanDir_MissingDirectory(t *testing.T) {
	if _, err := ScanDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestScanDir_EmptyDirectory(t *testing.T) {
	files, err := ScanDir(t.TempDir())
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files, want 0", len(files))
	}
}
