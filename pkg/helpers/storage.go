package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"time"
)

// ObjectStorage stores an uploaded file under name and returns the
// path or URL clients use to fetch it.
// Remove deletes what Save stored, given the path or URL Save returned.
type ObjectStorage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

// UploadFilename builds "{epoch-ms}-{random}{ext}".
func UploadFilename(now time.Time, ext string) string {
	return fmt.Sprintf("%d-%d%s", now.UnixMilli(), rand.Int64N(1e9), ext)
}

// DiskStorage writes into Dir and answers with URLPrefix + "/" + name.
type DiskStorage struct {
	Dir       string
	URLPrefix string
}

func NewDiskStorage(dir, urlPrefix string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStorage{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (d *DiskStorage) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	f, err := os.Create(filepath.Join(d.Dir, filepath.Base(name)))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join(d.URLPrefix, filepath.Base(name)), nil
}

// Remove deletes the file behind url. A missing file is not an error.
func (d *DiskStorage) Remove(_ context.Context, url string) error {
	err := os.Remove(filepath.Join(d.Dir, path.Base(url)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
