package v1alpha1

// Tensor carries INT32 tensor contents on the wire.
type Tensor struct {
	Name   string  `json:"name"`
	Shape  []int64 `json:"shape,omitempty"`
	Values []int32 `json:"values,omitempty"`

	// ChunkSize, if set, delivers the contents to the backend in chunks of this many bytes.
	// Zero delivers the contents in one chunk; negative values are rejected.
	ChunkSize int32 `json:"chunkSize,omitempty"`
}

func (t *Tensor) GetName() string {
	if t == nil {
		return ""
	}
	return t.Name
}

func (t *Tensor) GetShape() []int64 {
	if t == nil {
		return nil
	}
	return t.Shape
}

func (t *Tensor) GetValues() []int32 {
	if t == nil {
		return nil
	}
	return t.Values
}

func (t *Tensor) GetChunkSize() int32 {
	if t == nil {
		return 0
	}
	return t.ChunkSize
}

type Payload struct {
	// BatchSize defaults to 1 when unset.
	BatchSize       int32     `json:"batchSize,omitempty"`
	Inputs          []*Tensor `json:"inputs,omitempty"`
	RequiredOutputs []string  `json:"requiredOutputs,omitempty"`

	// SkipOutputs lists required outputs for which the caller declines to provide a buffer.
	SkipOutputs []string `json:"skipOutputs,omitempty"`
}

func (p *Payload) GetBatchSize() int32 {
	if p == nil || p.BatchSize == 0 {
		return 1
	}
	return p.BatchSize
}

func (p *Payload) GetInputs() []*Tensor {
	if p == nil {
		return nil
	}
	return p.Inputs
}

func (p *Payload) GetRequiredOutputs() []string {
	if p == nil {
		return nil
	}
	return p.RequiredOutputs
}

func (p *Payload) GetSkipOutputs() []string {
	if p == nil {
		return nil
	}
	return p.SkipOutputs
}

type ExecuteRequest struct {
	// Instance selects the model instance; payload i runs in slot i of that instance.
	Instance int32      `json:"instance,omitempty"`
	Payloads []*Payload `json:"payloads,omitempty"`
}

func (r *ExecuteRequest) GetInstance() int32 {
	if r == nil {
		return 0
	}
	return r.Instance
}

func (r *ExecuteRequest) GetPayloads() []*Payload {
	if r == nil {
		return nil
	}
	return r.Payloads
}

type PayloadResult struct {
	Outputs      []*Tensor `json:"outputs,omitempty"`
	ErrorCode    int32     `json:"errorCode,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

type ExecuteResponse struct {
	Results []*PayloadResult `json:"results,omitempty"`
}

func (r *ExecuteResponse) GetResults() []*PayloadResult {
	if r == nil {
		return nil
	}
	return r.Results
}
