package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	api "k8s.io/examples/AI/sequencecloud/pkg/api/v1alpha1"
)

// echoBackend writes the first element of "IN" to the first required output.
type echoBackend struct {
	maxPayloads int
	seen        []*Payload
}

func (b *echoBackend) Close() error { return nil }

func (b *echoBackend) Execute(ctx context.Context, payloads []*Payload) error {
	b.seen = payloads
	if len(payloads) > b.maxPayloads {
		return NewError(KindBatchTooBig, "", nil)
	}
	for _, p := range payloads {
		data, err := p.Input.NextChunk("IN", Int32ByteSize)
		if err != nil {
			p.Err = NewError(KindInputContents, "IN", err)
			continue
		}
		buf, err := p.Output.OutputBuffer(p.RequiredOutputs[0], []int64{1}, Int32ByteSize)
		if err != nil {
			p.Err = err
			continue
		}
		if buf != nil {
			copy(buf, data)
		}
	}
	return nil
}

func TestEvaluate(t *testing.T) {
	backend := &echoBackend{maxPayloads: 3}
	req := &api.ExecuteRequest{
		Payloads: []*api.Payload{
			{Inputs: []*api.Tensor{{Name: "IN", Shape: []int64{2}, Values: []int32{7, 8}}}, RequiredOutputs: []string{"OUT"}},
			{Inputs: []*api.Tensor{{Name: "OTHER", Values: []int32{1}}}, RequiredOutputs: []string{"OUT"}},
			{Inputs: []*api.Tensor{{Name: "IN", Values: []int32{9}}}, RequiredOutputs: []string{"OUT"}, SkipOutputs: []string{"OUT"}},
		},
	}

	response, err := Evaluate(context.Background(), backend, req)
	if err != nil {
		t.Fatalf("failed to evaluate: %v", err)
	}

	if got := backend.seen[0].BatchSize; got != 1 {
		t.Errorf("expected default batch size 1, got %d", got)
	}
	if diff := cmp.Diff([][]int64{{2}}, backend.seen[0].InputShapes); diff != "" {
		t.Errorf("unexpected input shapes (-want +got):\n%s", diff)
	}

	if len(response.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(response.Results))
	}
	want := &api.PayloadResult{Outputs: []*api.Tensor{{Name: "OUT", Shape: []int64{1}, Values: []int32{7}}}}
	if diff := cmp.Diff(want, response.Results[0]); diff != "" {
		t.Errorf("unexpected result 0 (-want +got):\n%s", diff)
	}
	if got := response.Results[1].ErrorCode; got != int32(KindInputContents) {
		t.Errorf("expected error code %d, got %d", KindInputContents, got)
	}
	if response.Results[1].ErrorMessage == "" {
		t.Errorf("expected error message for result 1")
	}
	if len(response.Results[2].Outputs) != 0 || response.Results[2].ErrorCode != 0 {
		t.Errorf("expected skipped output with no error, got %+v", response.Results[2])
	}
}

func TestEvaluateRejectsNegativeChunkSize(t *testing.T) {
	backend := &echoBackend{maxPayloads: 1}
	req := &api.ExecuteRequest{Payloads: []*api.Payload{
		{Inputs: []*api.Tensor{{Name: "IN", Values: []int32{1}, ChunkSize: -1}}, RequiredOutputs: []string{"OUT"}},
	}}

	_, err := Evaluate(context.Background(), backend, req)
	if got := status.Code(err); got != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v (%v)", got, err)
	}
	if backend.seen != nil {
		t.Errorf("backend should not run when the request is malformed")
	}
}

func TestEvaluateBatchRejected(t *testing.T) {
	backend := &echoBackend{maxPayloads: 0}
	req := &api.ExecuteRequest{Payloads: []*api.Payload{{}}}

	_, err := Evaluate(context.Background(), backend, req)
	if !errors.Is(err, ErrBatchTooBig) {
		t.Fatalf("expected batch too big, got %v", err)
	}
}
