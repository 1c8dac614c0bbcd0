package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"k8s.io/examples/AI/sequencecloud/pkg/blobs"
	"k8s.io/examples/AI/sequencecloud/pkg/modelconfig"
	"k8s.io/klog/v2"
)

type ConfigLoader struct {
	// reader is the interface to fetch blobs
	reader blobs.BlobReader

	// maxReadAttempts is the number of times to attempt a read before failing
	maxReadAttempts int

	retryDelaySeconds int
}

// Load reads and parses the model config, retrying transient read failures.
// A missing config or one that does not parse is not retried.
func (l *ConfigLoader) Load(ctx context.Context, info blobs.BlobInfo) (*modelconfig.ModelConfig, error) {
	log := klog.FromContext(ctx)

	attempt := 0
	for {
		attempt++

		data, err := l.reader.ReadBlob(ctx, info)
		if err == nil {
			return modelconfig.Parse(data)
		}

		if errors.Is(err, os.ErrNotExist) || attempt >= l.maxReadAttempts {
			return nil, err
		}

		log.Error(err, "reading model config, will retry", "info", info, "attempt", attempt)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting to retry: %w", ctx.Err())
		case <-time.After(time.Duration(l.retryDelaySeconds) * time.Second):
		}
	}
}
