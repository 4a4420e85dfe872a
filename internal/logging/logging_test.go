package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	w, err := newFileWriter(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Filename != filepath.Join(dir, LogFileName) {
		t.Errorf("expected log file inside %s, got %s", dir, w.Filename)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected directory to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Errorf("write probe was not cleaned up")
	}
}

func TestNewFileWriter_RejectsFilePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := newFileWriter(file); err == nil {
		t.Error("expected error when log directory is a regular file")
	}
}
