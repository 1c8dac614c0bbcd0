package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"k8s.io/examples/AI/sequencecloud/pkg/blobs"
	"k8s.io/examples/AI/sequencecloud/pkg/modelconfig"
	"k8s.io/klog/v2"
)

var errInvalidConfig = errors.New("invalid model config")

// configCache serves model configs from a local directory, filling it from upstream on a miss.
type configCache struct {
	local blobs.Blobstore
	// upstream is optional.
	upstream blobs.BlobReader
}

func (c *configCache) Get(ctx context.Context, name string) ([]byte, error) {
	log := klog.FromContext(ctx)

	info := blobs.BlobInfo{Key: name}
	data, err := c.local.ReadBlob(ctx, info)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading cached config %q: %w", name, err)
	}
	if c.upstream == nil {
		return nil, err
	}

	data, err = c.upstream.ReadBlob(ctx, info)
	if err != nil {
		return nil, err
	}

	// Only well-formed configs are cached and served.
	if _, err := modelconfig.Parse(data); err != nil {
		return nil, fmt.Errorf("%w %q: %v", errInvalidConfig, name, err)
	}

	if err := c.local.WriteBlob(ctx, info, data); err != nil {
		log.Error(err, "caching model config", "model", name)
	}
	return data, nil
}
