package engine

import "encoding/binary"

// Int32ByteSize is the width of one INT32 element. Tensor contents use native byte order.
const Int32ByteSize = 4

// EncodeInt32s encodes values in native byte order.
func EncodeInt32s(values []int32) []byte {
	b := make([]byte, Int32ByteSize*len(values))
	for i, v := range values {
		binary.NativeEndian.PutUint32(b[Int32ByteSize*i:], uint32(v))
	}
	return b
}

// DecodeInt32s decodes native byte order INT32 values; trailing partial elements are ignored.
func DecodeInt32s(b []byte) []int32 {
	values := make([]int32, len(b)/Int32ByteSize)
	for i := range values {
		values[i] = int32(binary.NativeEndian.Uint32(b[Int32ByteSize*i:]))
	}
	return values
}

// PutInt32 writes v into the first Int32ByteSize bytes of b.
func PutInt32(b []byte, v int32) {
	binary.NativeEndian.PutUint32(b, uint32(v))
}
