package engine

import (
	"context"
	"io"
)

// NoGPUDevice is passed as the device of instances that run on the CPU.
const NoGPUDevice = -1

// Backend executes batches of payloads for one model instance.
// Execute must not be called concurrently on the same Backend.
type Backend interface {
	io.Closer

	// Execute runs every payload and records per-payload failures in Payload.Err.
	// A returned error means the batch was rejected before any payload was processed.
	Execute(ctx context.Context, payloads []*Payload) error
}

// InputSource delivers the contents of the named input tensors of one payload, chunk by chunk.
type InputSource interface {
	// NextChunk returns the next chunk of the named tensor; remaining is the number of bytes the caller
	// still expects and is only a hint. A nil chunk with a nil error marks the end of the tensor.
	NextChunk(name string, remaining int) ([]byte, error)
}

// OutputSink provides buffers for the output tensors of one payload.
type OutputSink interface {
	// OutputBuffer returns a buffer of at least byteSize bytes for the named output.
	// A nil buffer with a nil error means the caller does not need this output.
	OutputBuffer(name string, shape []int64, byteSize int) ([]byte, error)
}

// Payload is one unit of work in a batch; for sequence models it is the next timestep of one sequence.
type Payload struct {
	// BatchSize is the number of batch entries in the payload's inputs.
	BatchSize int

	// InputNames and InputShapes describe the inputs, excluding the batch dimension.
	InputNames  []string
	InputShapes [][]int64

	// RequiredOutputs lists the outputs the caller wants written.
	RequiredOutputs []string

	Input  InputSource
	Output OutputSink

	// Err is set by the backend when the payload fails.
	Err error
}

// InputShape returns the declared shape of the named input.
func (p *Payload) InputShape(name string) ([]int64, bool) {
	for i, inputName := range p.InputNames {
		if inputName == name && i < len(p.InputShapes) {
			return p.InputShapes[i], true
		}
	}
	return nil, false
}
