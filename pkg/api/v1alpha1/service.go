package v1alpha1

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

// CodecName is the gRPC content subtype the service is served with.
const CodecName = "json"

const (
	SequenceBackendServiceName = "sequencecloud.v1alpha1.SequenceBackend"
	SequenceBackendExecute     = "/" + SequenceBackendServiceName + "/Execute"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

type SequenceBackendServer interface {
	Execute(context.Context, *ExecuteRequest) (*ExecuteResponse, error)
}

// UnimplementedSequenceBackendServer can be embedded to have forward compatible implementations.
type UnimplementedSequenceBackendServer struct{}

func (UnimplementedSequenceBackendServer) Execute(context.Context, *ExecuteRequest) (*ExecuteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Execute not implemented")
}

func RegisterSequenceBackendServer(s grpc.ServiceRegistrar, srv SequenceBackendServer) {
	s.RegisterService(&sequenceBackendServiceDesc, srv)
}

func sequenceBackendExecuteHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ExecuteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SequenceBackendServer).Execute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SequenceBackendExecute,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SequenceBackendServer).Execute(ctx, req.(*ExecuteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var sequenceBackendServiceDesc = grpc.ServiceDesc{
	ServiceName: SequenceBackendServiceName,
	HandlerType: (*SequenceBackendServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Execute",
			Handler:    sequenceBackendExecuteHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sequencecloud/v1alpha1/sequence.proto",
}

type SequenceBackendClient interface {
	Execute(ctx context.Context, in *ExecuteRequest, opts ...grpc.CallOption) (*ExecuteResponse, error)
}

type sequenceBackendClient struct {
	cc grpc.ClientConnInterface
}

func NewSequenceBackendClient(cc grpc.ClientConnInterface) SequenceBackendClient {
	return &sequenceBackendClient{cc: cc}
}

func (c *sequenceBackendClient) Execute(ctx context.Context, in *ExecuteRequest, opts ...grpc.CallOption) (*ExecuteResponse, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	out := new(ExecuteResponse)
	if err := c.cc.Invoke(ctx, SequenceBackendExecute, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
