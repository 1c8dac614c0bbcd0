package engine

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorKind identifies a backend failure. The values are stable and are reported on the wire as payload error codes.
type ErrorKind int32

// KindUnknown is reported for errors that did not originate in a backend.
const KindUnknown ErrorKind = -1

const (
	KindSuccess ErrorKind = iota
	KindGPUNotSupported
	KindSequenceBatcher
	KindModelControl
	KindInput
	KindOutput
	KindInputName
	KindOutputName
	KindInputOutputDataType
	KindInputContents
	KindInputSize
	KindOutputBuffer
	KindBatchTooBig
	KindTimesteps
	KindParameter
)

var kindMessages = map[ErrorKind]string{
	KindSuccess:             "success",
	KindGPUNotSupported:     "execution on GPU not supported",
	KindSequenceBatcher:     "model configuration must configure sequence batcher",
	KindModelControl:        "'START' and 'READY' must be configured as the control inputs",
	KindInput:               "model must have input 'INPUT' with vector shape, any length",
	KindOutput:              "model must have output 'OUTPUT' with shape matching 'INPUT'",
	KindInputName:           "model input must be named 'INPUT'",
	KindOutputName:          "model output must be named 'OUTPUT'",
	KindInputOutputDataType: "model input and output must have TYPE_INT32 data-type",
	KindInputContents:       "unable to get input tensor values",
	KindInputSize:           "unexpected size for input tensor",
	KindOutputBuffer:        "unable to get buffer for output tensor values",
	KindBatchTooBig:         "unable to execute batch larger than max-batch-size",
	KindTimesteps:           "unable to execute more than one timestep at a time",
	KindParameter:           "invalid value for model parameter",
}

func (k ErrorKind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("unknown error kind %d", int32(k))
}

// Code maps the kind onto a gRPC status code.
func (k ErrorKind) Code() codes.Code {
	switch k {
	case KindSuccess:
		return codes.OK
	case KindGPUNotSupported, KindTimesteps:
		return codes.Unimplemented
	case KindSequenceBatcher, KindModelControl, KindInput, KindOutput,
		KindInputName, KindOutputName, KindInputOutputDataType:
		return codes.FailedPrecondition
	case KindInputContents:
		return codes.DataLoss
	case KindInputSize, KindParameter:
		return codes.InvalidArgument
	case KindOutputBuffer:
		return codes.Internal
	case KindBatchTooBig:
		return codes.ResourceExhausted
	default:
		return codes.Unknown
	}
}

// Error is a backend failure of a known kind.
// Tensor names the tensor involved, if any, and Err is the underlying cause, if any.
type Error struct {
	Kind   ErrorKind
	Tensor string
	Err    error
}

// Sentinels for use with errors.Is; they match any *Error of the same kind.
var (
	ErrGPUNotSupported     = &Error{Kind: KindGPUNotSupported}
	ErrSequenceBatcher     = &Error{Kind: KindSequenceBatcher}
	ErrModelControl        = &Error{Kind: KindModelControl}
	ErrInput               = &Error{Kind: KindInput}
	ErrOutput              = &Error{Kind: KindOutput}
	ErrInputName           = &Error{Kind: KindInputName}
	ErrOutputName          = &Error{Kind: KindOutputName}
	ErrInputOutputDataType = &Error{Kind: KindInputOutputDataType}
	ErrInputContents       = &Error{Kind: KindInputContents}
	ErrInputSize           = &Error{Kind: KindInputSize}
	ErrOutputBuffer        = &Error{Kind: KindOutputBuffer}
	ErrBatchTooBig         = &Error{Kind: KindBatchTooBig}
	ErrTimesteps           = &Error{Kind: KindTimesteps}
	ErrParameter           = &Error{Kind: KindParameter}
)

func NewError(kind ErrorKind, tensor string, err error) *Error {
	return &Error{Kind: kind, Tensor: tensor, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Tensor != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Tensor)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// GRPCStatus lets status.FromError and status.Code report the kind's code.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.Kind.Code(), e.Error())
}

// KindOf returns the kind of err, KindSuccess for nil, or KindUnknown if err is not a backend error.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
