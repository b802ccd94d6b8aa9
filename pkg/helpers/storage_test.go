package helpers

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestUploadFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	name := UploadFilename(now, ".png")
	if !regexp.MustCompile(`^1700000000123-\d{1,9}\.png$`).MatchString(name) {
		t.Fatalf("unexpected name %q", name)
	}
}

func TestDiskStorageSave(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStorage(filepath.Join(dir, "projects"), "/storage/projects")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, err := s.Save(context.Background(), "1-2.png", "image/png", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got != "/storage/projects/1-2.png" {
		t.Fatalf("path = %q", got)
	}
	b, err := os.ReadFile(filepath.Join(dir, "projects", "1-2.png"))
	if err != nil || string(b) != "data" {
		t.Fatalf("file = %q, %v", b, err)
	}
}

func TestGCSPublicURL(t *testing.T) {
	got := GCSPublicURL("portfolio-assets", "projects/1-2.png")
	if got != "https://storage.googleapis.com/portfolio-assets/projects/1-2.png" {
		t.Fatalf("url = %q", got)
	}
}

func TestDiskStorageRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStorage(dir, "/storage/projects")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	url, err := s.Save(context.Background(), "1-2.png", "image/png", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Remove(context.Background(), url); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "1-2.png")); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	if err := s.Remove(context.Background(), url); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}
