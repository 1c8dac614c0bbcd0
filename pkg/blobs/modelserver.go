package blobs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"k8s.io/klog/v2"
)

// ModelServer reads blobs from a model-store over HTTP.
type ModelServer struct {
	// BlobserverURL is the base URL to the model-store, typically http://model-store
	BlobserverURL *url.URL

	// HTTPClient is used for requests; http.DefaultClient if nil.
	HTTPClient *http.Client
}

var _ BlobReader = &ModelServer{}

func (l *ModelServer) ReadBlob(ctx context.Context, info BlobInfo) ([]byte, error) {
	u := l.BlobserverURL.JoinPath(info.Key)
	return l.get(ctx, u.String())
}

func (l *ModelServer) get(ctx context.Context, url string) ([]byte, error) {
	log := klog.FromContext(ctx)

	log.Info("downloading from url", "url", url)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	startedAt := time.Now()

	httpClient := l.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		if resp.StatusCode == 404 {
			return nil, fmt.Errorf("blob not found: %w", os.ErrNotExist)
		}
		return nil, fmt.Errorf("unexpected status downloading from upstream source: %v", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("downloading from upstream source: %w", err)
	}

	log.Info("downloaded blob", "url", url, "bytes", len(data), "duration", time.Since(startedAt))

	return data, nil
}
