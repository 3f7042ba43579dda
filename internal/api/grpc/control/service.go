package control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "batteryalarm.v1.ControlService"

	// GetArmedMethod is the full method name of GetArmed.
	GetArmedMethod = "/" + ServiceName + "/GetArmed"
	// ToggleArmedMethod is the full method name of ToggleArmed.
	ToggleArmedMethod = "/" + ServiceName + "/ToggleArmed"
)

// ControlServiceServer is the server API of the control service.
type ControlServiceServer interface {
	GetArmed(ctx context.Context, req *emptypb.Empty) (*wrapperspb.BoolValue, error)
	ToggleArmed(ctx context.Context, req *emptypb.Empty) (*wrapperspb.BoolValue, error)
}

// ControlServiceClient is the client API of the control service.
type ControlServiceClient interface {
	GetArmed(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	ToggleArmed(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

// ServiceDesc describes the control service for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by gRPC convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetArmed",
			Handler:    getArmedHandler,
		},
		{
			MethodName: "ToggleArmed",
			Handler:    toggleArmedHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "batteryalarm/v1/control.proto",
}

// RegisterControlServiceServer registers srv on registrar.
func RegisterControlServiceServer(registrar grpc.ServiceRegistrar, srv ControlServiceServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// NewControlServiceClient returns a client bound to cc.
//
//nolint:ireturn // Mirrors generated gRPC clients.
func NewControlServiceClient(cc grpc.ClientConnInterface) ControlServiceClient {
	return &controlServiceClient{cc: cc}
}

type controlServiceClient struct {
	cc grpc.ClientConnInterface
}

func (c *controlServiceClient) GetArmed(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, GetArmedMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *controlServiceClient) ToggleArmed(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, ToggleArmedMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func getArmedHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	server, _ := srv.(ControlServiceServer)
	if interceptor == nil {
		return server.GetArmed(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetArmedMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		empty, _ := req.(*emptypb.Empty)
		return server.GetArmed(ctx, empty)
	}

	return interceptor(ctx, in, info, handler)
}

func toggleArmedHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	server, _ := srv.(ControlServiceServer)
	if interceptor == nil {
		return server.ToggleArmed(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ToggleArmedMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		empty, _ := req.(*emptypb.Empty)
		return server.ToggleArmed(ctx, empty)
	}

	return interceptor(ctx, in, info, handler)
}
