package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanDir(t *testing.T) {
	dir := t.TempDir()

	// Accepted formats in mixed case, plus files that must be ignored
	for _, name := range []string{
		"a.WAV", "b.mp3", "d.FLAC", "e.ogg", "f.m4a",
		"notes.txt", "cover.jpg", "noext",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.wav"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}

	want := []string{"a.WAV", "b.mp3", "d.FLAC", "e.ogg", "f.m4a"}
	if len(files) != len(want) {
		t.Fatalf("got %d files %v, want %d", len(files), files, len(want))
	}
	for i, name := range want {
		if files[i] != filepath.Join(dir, name) {
			t.Errorf("files[%d] = %s, want %s", i, files[i], name)
		}
	}
}

func TestScanDirMissing(t *testing.T) {
	if _, err := ScanDir("/nonexistent/path"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestScanDirEmpty(t *testing.T) {
	files, err := ScanDir(t.TempDir())
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %v, want no files", files)
	}
}
