package engine

import (
	"context"
	"slices"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	api "k8s.io/examples/AI/sequencecloud/pkg/api/v1alpha1"
)

// Evaluate runs the payloads of req through backend using in-memory tensors and collects the results.
// A batch-level rejection is returned as the error; payload failures are reported in the results.
func Evaluate(ctx context.Context, backend Backend, req *api.ExecuteRequest) (*api.ExecuteResponse, error) {
	payloads := make([]*Payload, len(req.GetPayloads()))
	outputs := make([]*MemoryOutput, len(req.GetPayloads()))
	for i, p := range req.GetPayloads() {
		input := NewMemoryInput()
		payload := &Payload{
			BatchSize:       int(p.GetBatchSize()),
			RequiredOutputs: p.GetRequiredOutputs(),
			Input:           input,
		}
		for _, tensor := range p.GetInputs() {
			if tensor.GetChunkSize() < 0 {
				return nil, status.Errorf(codes.InvalidArgument, "payload %d: input %q has negative chunk size %d", i, tensor.GetName(), tensor.GetChunkSize())
			}
			payload.InputNames = append(payload.InputNames, tensor.GetName())
			payload.InputShapes = append(payload.InputShapes, tensor.GetShape())
			input.AddInt32s(tensor.GetName(), tensor.GetValues(), int(tensor.GetChunkSize()))
		}

		output := NewMemoryOutput()
		for _, name := range p.GetSkipOutputs() {
			output.Skip(name)
		}
		payload.Output = output

		payloads[i] = payload
		outputs[i] = output
	}

	if err := backend.Execute(ctx, payloads); err != nil {
		return nil, err
	}

	response := &api.ExecuteResponse{}
	for i, payload := range payloads {
		result := &api.PayloadResult{}
		if payload.Err != nil {
			result.ErrorCode = int32(KindOf(payload.Err))
			result.ErrorMessage = payload.Err.Error()
		}
		for _, name := range payload.RequiredOutputs {
			t, found := outputs[i].Output(name)
			if !found {
				continue
			}
			result.Outputs = append(result.Outputs, &api.Tensor{
				Name:   name,
				Shape:  slices.Clone(t.Shape),
				Values: t.Int32s(),
			})
		}
		response.Results = append(response.Results, result)
	}

	return response, nil
}
