package peakroc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Open returns a reader for a local path or, if client is non-nil, a gs://
// path. Compressed files are decompressed transparently. The caller must
// Close the result.
func Open(path string, client *storage.Client) (io.ReadCloser, error) {
	return OpenContext(context.Background(), path, client)
}

// OpenContext is Open with a context governing the google storage request.
func OpenContext(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	raw, err := openRaw(ctx, path, client)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	rc, dt, err := MaybeDecompress(raw)
	if err != nil {
		raw.Close()
		return nil, pfx.Err(fmt.Errorf("%s (%s): %w", path, dt, err))
	}

	return rc, nil
}

func openRaw(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, "gs://") {
		return os.Open(path)
	}

	if client == nil {
		return nil, fmt.Errorf("a google storage client is required to read gs:// paths")
	}

	bucketName, pathName, err := SplitGSPath(path)
	if err != nil {
		return nil, err
	}

	return client.Bucket(bucketName).Object(pathName).NewReader(ctx)
}

// SplitGSPath detects the bucket and the path to the actual file within a
// gs://bucket/path/to/file address.
func SplitGSPath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// IsGSPath reports whether path refers to google storage.
func IsGSPath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}
