package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient accepts either inline service-account JSON or a path to it.
// Empty credentials fall back to Application Default Credentials.
func NewGCSClient(ctx context.Context, credentials string) (*storage.Client, error) {
	switch {
	case credentials == "":
		return storage.NewClient(ctx)
	case strings.HasPrefix(strings.TrimSpace(credentials), "{"):
		return storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credentials)))
	default:
		return storage.NewClient(ctx, option.WithCredentialsFile(credentials))
	}
}

// GCSStorage puts uploads under Prefix in Bucket and answers with their public URL.
type GCSStorage struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func (g *GCSStorage) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	object := path.Join(g.Prefix, path.Base(name))
	wc := g.Client.Bucket(g.Bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=31536000, immutable"
	wc.ChunkSize = 0
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("gcs write %s: %w", object, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", object, err)
	}
	return GCSPublicURL(g.Bucket, object), nil
}

// Remove deletes the object behind url. A missing object is not an error.
func (g *GCSStorage) Remove(ctx context.Context, url string) error {
	object := path.Join(g.Prefix, path.Base(url))
	err := g.Client.Bucket(g.Bucket).Object(object).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

func GCSPublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}
