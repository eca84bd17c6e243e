package pixels

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	img := image.NewGray(image.Rect(0, 0, width, height))
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func TestEnumerate(t *testing.T) {
	tmpDir := t.TempDir()
	writePNG(t, filepath.Join(tmpDir, "foo.png"), 1920, 1080)
	writePNG(t, filepath.Join(tmpDir, "bar.png"), 4, 3)

	// Non-matching files are ignored.
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create sidecar file: %v", err)
	}

	records, err := Enumerate(tmpDir, "*.png")
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	byName := make(map[string]int64)
	for _, rec := range records {
		byName[rec.SeqName] = rec.Pixels
	}
	if byName["foo"] != 2073600 {
		t.Errorf("Expected foo pixels 2073600, got %d", byName["foo"])
	}
	if byName["bar"] != 12 {
		t.Errorf("Expected bar pixels 12, got %d", byName["bar"])
	}
}

func TestEnumerateCorruptImage(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "broken.png"), []byte("not a png"), 0644); err != nil {
		t.Fatalf("Failed to create corrupt file: %v", err)
	}

	if _, err := Enumerate(tmpDir, "*.png"); err == nil {
		t.Error("Expected error for corrupt image, got nil")
	}
}

func TestEnumerateMissingDir(t *testing.T) {
	if _, err := Enumerate("/nonexistent/images", "*.png"); err == nil {
		t.Error("Expected error for missing directory, got nil")
	}
}

func TestEnumerateEmptyMatch(t *testing.T) {
	tmpDir := t.TempDir()
	records, err := Enumerate(tmpDir, "*.png")
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}
