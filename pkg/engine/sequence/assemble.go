package sequence

import (
	"fmt"

	"k8s.io/examples/AI/sequencecloud/pkg/engine"
	"k8s.io/klog/v2"
)

// assembleTensor copies the chunks of the named input into one buffer of exactly expectedByteSize bytes.
// Chunks need not be contiguous or aligned to element boundaries.
func assembleTensor(log klog.Logger, src engine.InputSource, name string, expectedByteSize int) ([]byte, error) {
	var buffer []byte

	for {
		chunk, err := src.NextChunk(name, expectedByteSize-len(buffer))
		if err != nil {
			return nil, engine.NewError(engine.KindInputContents, name, err)
		}

		// A nil chunk means we have all the input.
		if chunk == nil {
			break
		}

		if log.V(4).Enabled() {
			log.V(4).Info("received input chunk", "tensor", name, "bytes", len(chunk), "first", firstElement(chunk))
		}

		if len(buffer)+len(chunk) > expectedByteSize {
			return nil, engine.NewError(engine.KindInputSize, name,
				fmt.Errorf("received more than the expected %d bytes", expectedByteSize))
		}
		buffer = append(buffer, chunk...)
	}

	if len(buffer) != expectedByteSize {
		return nil, engine.NewError(engine.KindInputSize, name,
			fmt.Errorf("received %d bytes, expected %d", len(buffer), expectedByteSize))
	}

	return buffer, nil
}

func firstElement(chunk []byte) any {
	if len(chunk) < engine.Int32ByteSize {
		return nil
	}
	return engine.DecodeInt32s(chunk[:engine.Int32ByteSize])[0]
}
