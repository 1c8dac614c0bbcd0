package engine

import (
	"fmt"
	"slices"
)

// MemoryInput is an InputSource over tensors held in memory.
type MemoryInput struct {
	tensors map[string]*memoryTensor
}

type memoryTensor struct {
	data      []byte
	chunkSize int
	offset    int
}

var _ InputSource = &MemoryInput{}

func NewMemoryInput() *MemoryInput {
	return &MemoryInput{
		tensors: make(map[string]*memoryTensor),
	}
}

// AddBytes registers raw tensor contents. A chunkSize of 0 delivers the contents in one chunk.
func (m *MemoryInput) AddBytes(name string, data []byte, chunkSize int) {
	m.tensors[name] = &memoryTensor{data: data, chunkSize: chunkSize}
}

// AddInt32s registers INT32 values, encoded in native byte order.
func (m *MemoryInput) AddInt32s(name string, values []int32, chunkSize int) {
	m.AddBytes(name, EncodeInt32s(values), chunkSize)
}

func (m *MemoryInput) NextChunk(name string, remaining int) ([]byte, error) {
	t, ok := m.tensors[name]
	if !ok {
		return nil, fmt.Errorf("input %q not found", name)
	}
	if t.offset >= len(t.data) {
		return nil, nil
	}
	n := len(t.data) - t.offset
	if t.chunkSize > 0 && t.chunkSize < n {
		n = t.chunkSize
	}
	chunk := t.data[t.offset : t.offset+n]
	t.offset += n
	return chunk, nil
}

// MemoryOutput is an OutputSink that allocates buffers and keeps them for inspection.
type MemoryOutput struct {
	outputs map[string]*MemoryTensor
	skip    map[string]bool
}

// MemoryTensor is an output written to a MemoryOutput.
type MemoryTensor struct {
	Name  string
	Shape []int64
	Data  []byte
}

var _ OutputSink = &MemoryOutput{}

func NewMemoryOutput() *MemoryOutput {
	return &MemoryOutput{
		outputs: make(map[string]*MemoryTensor),
		skip:    make(map[string]bool),
	}
}

// Skip makes OutputBuffer return no buffer for the named output.
func (m *MemoryOutput) Skip(name string) {
	m.skip[name] = true
}

func (m *MemoryOutput) OutputBuffer(name string, shape []int64, byteSize int) ([]byte, error) {
	if byteSize < 0 {
		return nil, fmt.Errorf("invalid byte size %d for output %q", byteSize, name)
	}
	if m.skip[name] {
		return nil, nil
	}
	t := &MemoryTensor{
		Name:  name,
		Shape: slices.Clone(shape),
		Data:  make([]byte, byteSize),
	}
	m.outputs[name] = t
	return t.Data, nil
}

// Output returns the named output, if a buffer was handed out for it.
func (m *MemoryOutput) Output(name string) (*MemoryTensor, bool) {
	t, ok := m.outputs[name]
	return t, ok
}

// Int32s decodes the written contents.
func (t *MemoryTensor) Int32s() []int32 {
	return DecodeInt32s(t.Data)
}
