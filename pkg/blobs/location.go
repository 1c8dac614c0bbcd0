package blobs

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// ParseLocation returns a reader and blob key for a gs://bucket/key, http(s)://host/.../key or local file location.
func ParseLocation(location string) (BlobReader, BlobInfo, error) {
	switch {
	case strings.HasPrefix(location, "gs://"):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(location, "gs://"), "/")
		if !ok || bucket == "" || key == "" {
			return nil, BlobInfo{}, fmt.Errorf("GCS location must be gs://<bucket>/<key>, got %q", location)
		}
		prefix, name := path.Split(key)
		return &GCSBlobstore{Bucket: bucket, Prefix: strings.TrimSuffix(prefix, "/")}, BlobInfo{Key: name}, nil

	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		u, err := url.Parse(location)
		if err != nil {
			return nil, BlobInfo{}, fmt.Errorf("parsing url %q: %w", location, err)
		}
		dir, name := path.Split(u.Path)
		if name == "" {
			return nil, BlobInfo{}, fmt.Errorf("url %q does not name a blob", location)
		}
		base := *u
		base.Path = dir
		return &ModelServer{BlobserverURL: &base}, BlobInfo{Key: name}, nil

	default:
		if location == "" {
			return nil, BlobInfo{}, fmt.Errorf("location must not be empty")
		}
		dir, name := filepath.Split(filepath.Clean(location))
		if dir == "" {
			dir = "."
		}
		return &DirBlobstore{BaseDir: dir}, BlobInfo{Key: name}, nil
	}
}
