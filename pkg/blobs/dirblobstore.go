package blobs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"
)

// DirBlobstore keeps blobs as files in a local directory.
type DirBlobstore struct {
	BaseDir string
}

var _ Blobstore = (*DirBlobstore)(nil)

func (d *DirBlobstore) pathFor(info BlobInfo) (string, error) {
	if info.Key == "" || strings.Contains(info.Key, "/") || strings.Contains(info.Key, `\`) || info.Key == "." || info.Key == ".." {
		return "", fmt.Errorf("invalid blob key %q", info.Key)
	}
	return filepath.Join(d.BaseDir, info.Key), nil
}

func (d *DirBlobstore) ReadBlob(ctx context.Context, info BlobInfo) ([]byte, error) {
	p, err := d.pathFor(info)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		// os.ReadFile errors satisfy errors.Is(err, os.ErrNotExist) for missing files.
		return nil, fmt.Errorf("reading blob %q: %w", info.Key, err)
	}
	return data, nil
}

func (d *DirBlobstore) WriteBlob(ctx context.Context, info BlobInfo, data []byte) error {
	p, err := d.pathFor(info)
	if err != nil {
		return err
	}
	if _, err := writeToFile(ctx, bytes.NewReader(data), p); err != nil {
		return fmt.Errorf("writing blob %q: %w", info.Key, err)
	}
	return nil
}

// writeToFile writes src to a temp file and renames it into place, so readers never see a partial blob.
func writeToFile(ctx context.Context, src io.Reader, destinationPath string) (int64, error) {
	log := klog.FromContext(ctx)

	dir := filepath.Dir(destinationPath)
	tempFile, err := os.CreateTemp(dir, "blob")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}

	shouldDeleteTempFile := true
	defer func() {
		if shouldDeleteTempFile {
			if err := os.Remove(tempFile.Name()); err != nil {
				log.Error(err, "removing temp file", "path", tempFile.Name())
			}
		}
	}()

	shouldCloseTempFile := true
	defer func() {
		if shouldCloseTempFile {
			if err := tempFile.Close(); err != nil {
				log.Error(err, "closing temp file", "path", tempFile.Name())
			}
		}
	}()

	n, err := io.Copy(tempFile, src)
	if err != nil {
		return n, fmt.Errorf("copying to temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return n, fmt.Errorf("closing temp file: %w", err)
	}
	shouldCloseTempFile = false

	if err := os.Rename(tempFile.Name(), destinationPath); err != nil {
		return n, fmt.Errorf("renaming temp file: %w", err)
	}
	shouldDeleteTempFile = false

	return n, nil
}
