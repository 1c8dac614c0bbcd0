package modelconfig

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DataType is the element type of a tensor, using the model repository spelling (TYPE_INT32 etc).
type DataType string

const (
	TypeInvalid DataType = "TYPE_INVALID"
	TypeBool    DataType = "TYPE_BOOL"
	TypeUint8   DataType = "TYPE_UINT8"
	TypeInt8    DataType = "TYPE_INT8"
	TypeInt16   DataType = "TYPE_INT16"
	TypeInt32   DataType = "TYPE_INT32"
	TypeInt64   DataType = "TYPE_INT64"
	TypeFP16    DataType = "TYPE_FP16"
	TypeFP32    DataType = "TYPE_FP32"
	TypeFP64    DataType = "TYPE_FP64"
	TypeString  DataType = "TYPE_STRING"
)

// ByteSize returns the size of one element, or 0 for variable-size and unknown types.
func (d DataType) ByteSize() int {
	switch d {
	case TypeBool, TypeUint8, TypeInt8:
		return 1
	case TypeInt16, TypeFP16:
		return 2
	case TypeInt32, TypeFP32:
		return 4
	case TypeInt64, TypeFP64:
		return 8
	default:
		return 0
	}
}

// VariableDim marks a dimension whose size is only known per request.
const VariableDim int64 = -1

type TensorConfig struct {
	Name     string   `json:"name"`
	DataType DataType `json:"data_type"`
	Dims     []int64  `json:"dims"`
}

type ControlKind string

const (
	ControlSequenceStart ControlKind = "CONTROL_SEQUENCE_START"
	ControlSequenceReady ControlKind = "CONTROL_SEQUENCE_READY"
)

type Control struct {
	Kind           ControlKind `json:"kind,omitempty"`
	Int32FalseTrue []int32     `json:"int32_false_true,omitempty"`
}

type ControlInput struct {
	Name    string    `json:"name"`
	Control []Control `json:"control,omitempty"`
}

type SequenceBatching struct {
	MaxSequenceIdleMicroseconds uint64         `json:"max_sequence_idle_microseconds,omitempty"`
	ControlInputs               []ControlInput `json:"control_input,omitempty"`
}

type Parameter struct {
	StringValue string `json:"string_value"`
}

// ModelConfig is the subset of a model repository configuration that backends inspect.
type ModelConfig struct {
	Name             string               `json:"name"`
	Backend          string               `json:"backend,omitempty"`
	MaxBatchSize     int                  `json:"max_batch_size"`
	Inputs           []TensorConfig       `json:"input,omitempty"`
	Outputs          []TensorConfig       `json:"output,omitempty"`
	SequenceBatching *SequenceBatching    `json:"sequence_batching,omitempty"`
	Parameters       map[string]Parameter `json:"parameters,omitempty"`
}

// MaxBatchSizeLimit bounds max_batch_size; backends allocate per-slot state up front.
const MaxBatchSizeLimit = 1 << 16

// Parse decodes a JSON model configuration.
func Parse(data []byte) (*ModelConfig, error) {
	config := &ModelConfig{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing model configuration: %w", err)
	}
	if config.MaxBatchSize < 0 || config.MaxBatchSize > MaxBatchSizeLimit {
		return nil, fmt.Errorf("max_batch_size must be between 0 and %d, got %d", MaxBatchSizeLimit, config.MaxBatchSize)
	}
	return config, nil
}

// HasSequenceBatching reports whether the sequence batcher is configured.
func (c *ModelConfig) HasSequenceBatching() bool {
	return c.SequenceBatching != nil
}

// SupportsBatching reports whether requests carry a leading batch dimension.
func (c *ModelConfig) SupportsBatching() bool {
	return c.MaxBatchSize != 0
}

// Parameter returns the string value of a parameter and whether it was set.
func (c *ModelConfig) Parameter(key string) (string, bool) {
	p, ok := c.Parameters[key]
	if !ok {
		return "", false
	}
	return p.StringValue, true
}

// IntParameter returns the integer value of a parameter, or defaultValue if it is not set.
func (c *ModelConfig) IntParameter(key string, defaultValue int) (int, error) {
	s, ok := c.Parameter(key)
	if !ok {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", key, err)
	}
	return v, nil
}
