package engine

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("executing payload: %w", NewError(KindInputSize, "INPUT", errors.New("short")))

	if !errors.Is(err, ErrInputSize) {
		t.Errorf("expected %v to match ErrInputSize", err)
	}
	if errors.Is(err, ErrInputContents) {
		t.Errorf("expected %v not to match ErrInputContents", err)
	}
	if got := KindOf(err); got != KindInputSize {
		t.Errorf("expected kind %d, got %d", KindInputSize, got)
	}
}

func TestErrorMessage(t *testing.T) {
	err := NewError(KindInputContents, "START", errors.New("no such input"))
	want := `unable to get input tensor values "START": no such input`
	if got := err.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestErrorStatusCode(t *testing.T) {
	grid := map[ErrorKind]codes.Code{
		KindGPUNotSupported: codes.Unimplemented,
		KindSequenceBatcher: codes.FailedPrecondition,
		KindBatchTooBig:     codes.ResourceExhausted,
		KindInputSize:       codes.InvalidArgument,
		KindOutputBuffer:    codes.Internal,
	}
	for kind, want := range grid {
		err := fmt.Errorf("wrapped: %w", NewError(kind, "", nil))
		if got := status.Code(err); got != want {
			t.Errorf("%v: expected code %v, got %v", kind, want, got)
		}
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(nil); got != KindSuccess {
		t.Errorf("expected success for nil, got %d", got)
	}
	if got := KindOf(errors.New("other")); got != KindUnknown {
		t.Errorf("expected unknown for foreign error, got %d", got)
	}
}
