package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryInputChunks(t *testing.T) {
	input := NewMemoryInput()
	input.AddBytes("T", []byte{1, 2, 3, 4, 5}, 2)

	var chunks [][]byte
	for {
		chunk, err := input.NextChunk("T", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if chunk == nil {
			break
		}
		chunks = append(chunks, chunk)
	}

	want := [][]byte{{1, 2}, {3, 4}, {5}}
	if diff := cmp.Diff(want, chunks); diff != "" {
		t.Errorf("unexpected chunks (-want +got):\n%s", diff)
	}
}

func TestMemoryInputMissing(t *testing.T) {
	if _, err := NewMemoryInput().NextChunk("nope", 4); err == nil {
		t.Fatalf("expected error for missing tensor")
	}
}

func TestMemoryOutput(t *testing.T) {
	output := NewMemoryOutput()
	output.Skip("SKIPPED")

	buf, err := output.OutputBuffer("SKIPPED", []int64{1}, 4)
	if err != nil || buf != nil {
		t.Fatalf("expected no buffer and no error for skipped output, got %v, %v", buf, err)
	}

	buf, err = output.OutputBuffer("OUTPUT", []int64{1, 3}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	PutInt32(buf, -42)

	got, ok := output.Output("OUTPUT")
	if !ok {
		t.Fatalf("expected output to be recorded")
	}
	if diff := cmp.Diff([]int64{1, 3}, got.Shape); diff != "" {
		t.Errorf("unexpected shape (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int32{-42}, got.Int32s()); diff != "" {
		t.Errorf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestInt32Codec(t *testing.T) {
	values := []int32{0, 1, -1, 1 << 30, -(1 << 31)}
	if diff := cmp.Diff(values, DecodeInt32s(EncodeInt32s(values))); diff != "" {
		t.Errorf("values changed (-want +got):\n%s", diff)
	}
	if got := DecodeInt32s([]byte{1, 2, 3}); len(got) != 0 {
		t.Errorf("expected partial element to be ignored, got %v", got)
	}
}
