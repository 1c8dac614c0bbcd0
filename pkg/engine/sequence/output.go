package sequence

import (
	"fmt"

	"k8s.io/examples/AI/sequencecloud/pkg/engine"
)

// writeOutput writes the accumulator value into the buffer the sink provides for the named output.
// Only one element is written, whatever the declared shape.
func writeOutput(sink engine.OutputSink, name string, shape []int64, value int32) error {
	buffer, err := sink.OutputBuffer(name, shape, engine.Int32ByteSize)
	if err != nil {
		return engine.NewError(engine.KindOutputBuffer, name, err)
	}

	// No buffer and no error: the caller does not need this output.
	if buffer == nil {
		return nil
	}

	if len(buffer) < engine.Int32ByteSize {
		return engine.NewError(engine.KindOutputBuffer, name,
			fmt.Errorf("buffer holds %d bytes, need %d", len(buffer), engine.Int32ByteSize))
	}
	engine.PutInt32(buffer, value)
	return nil
}

// outputShape is [1, n] when the model batches and [n] otherwise.
func outputShape(supportsBatching bool, elementCount int64) []int64 {
	if supportsBatching {
		return []int64{1, elementCount}
	}
	return []int64{elementCount}
}
