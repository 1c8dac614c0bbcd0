package modelconfig

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sequenceConfig = `{
  "name": "simple_sequence",
  "backend": "sequence",
  "max_batch_size": 8,
  "sequence_batching": {
    "control_input": [
      {"name": "START", "control": [{"kind": "CONTROL_SEQUENCE_START", "int32_false_true": [0, 1]}]},
      {"name": "READY", "control": [{"kind": "CONTROL_SEQUENCE_READY", "int32_false_true": [0, 1]}]}
    ]
  },
  "input": [{"name": "INPUT", "data_type": "TYPE_INT32", "dims": [-1]}],
  "output": [{"name": "OUTPUT", "data_type": "TYPE_INT32", "dims": [-1]}],
  "parameters": {"execute_delay_ms": {"string_value": "20"}}
}`

func TestParse(t *testing.T) {
	config, err := Parse([]byte(sequenceConfig))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	want := &ModelConfig{
		Name:         "simple_sequence",
		Backend:      "sequence",
		MaxBatchSize: 8,
		SequenceBatching: &SequenceBatching{
			ControlInputs: []ControlInput{
				{Name: "START", Control: []Control{{Kind: ControlSequenceStart, Int32FalseTrue: []int32{0, 1}}}},
				{Name: "READY", Control: []Control{{Kind: ControlSequenceReady, Int32FalseTrue: []int32{0, 1}}}},
			},
		},
		Inputs:     []TensorConfig{{Name: "INPUT", DataType: TypeInt32, Dims: []int64{VariableDim}}},
		Outputs:    []TensorConfig{{Name: "OUTPUT", DataType: TypeInt32, Dims: []int64{VariableDim}}},
		Parameters: map[string]Parameter{"execute_delay_ms": {StringValue: "20"}},
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}

	if !config.HasSequenceBatching() {
		t.Errorf("expected sequence batching to be configured")
	}
	if !config.SupportsBatching() {
		t.Errorf("expected batching support with max_batch_size 8")
	}

	delay, err := config.IntParameter("execute_delay_ms", 0)
	if err != nil {
		t.Fatalf("reading execute_delay_ms: %v", err)
	}
	if delay != 20 {
		t.Errorf("expected execute_delay_ms 20, got %d", delay)
	}
}

func TestParseRejectsNegativeBatchSize(t *testing.T) {
	if _, err := Parse([]byte(`{"name": "m", "max_batch_size": -1}`)); err == nil {
		t.Fatalf("expected error for negative max_batch_size")
	}
}

func TestParseBatchSizeLimit(t *testing.T) {
	if _, err := Parse([]byte(`{"name": "m", "max_batch_size": 65536}`)); err != nil {
		t.Errorf("unexpected error at the limit: %v", err)
	}
	if _, err := Parse([]byte(`{"name": "m", "max_batch_size": 9223372036854775807}`)); err == nil {
		t.Errorf("expected error for huge max_batch_size")
	}
}

func TestIntParameter(t *testing.T) {
	config := &ModelConfig{
		Parameters: map[string]Parameter{"bad": {StringValue: "soon"}},
	}

	v, err := config.IntParameter("missing", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 {
		t.Errorf("expected default 7, got %d", v)
	}

	if _, err := config.IntParameter("bad", 0); err == nil {
		t.Errorf("expected error for non-integer parameter")
	}
}

func TestDataTypeByteSize(t *testing.T) {
	grid := map[DataType]int{
		TypeInt32:  4,
		TypeFP16:   2,
		TypeInt64:  8,
		TypeUint8:  1,
		TypeString: 0,
	}
	for dataType, want := range grid {
		if got := dataType.ByteSize(); got != want {
			t.Errorf("%s: expected byte size %d, got %d", dataType, want, got)
		}
	}
}
