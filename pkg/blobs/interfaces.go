package blobs

import "context"

type BlobReader interface {
	// ReadBlob returns the contents of the blob.
	// If no such object exists, ReadBlob should return an error for which errors.Is(err, os.ErrNotExist) is true.
	ReadBlob(ctx context.Context, info BlobInfo) ([]byte, error)
}

type Blobstore interface {
	BlobReader
	// WriteBlob stores data under the blob key, replacing any existing object.
	WriteBlob(ctx context.Context, info BlobInfo, data []byte) error
}

type BlobInfo struct {
	// Key is the object key, typically the model name.
	Key string
}
