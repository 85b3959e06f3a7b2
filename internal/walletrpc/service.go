// Package walletrpc describes the WalletSimulator gRPC service. Requests and
// responses are google.protobuf.Struct values carrying the same fields as the
// HTTP API, so no generated stubs are needed.
package walletrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "walletsim.v1.WalletSimulator"

const (
	MethodPayQRIS    = "/" + ServiceName + "/PayQRIS"
	MethodTopUp      = "/" + ServiceName + "/TopUp"
	MethodStartKYC   = "/" + ServiceName + "/StartKYC"
	MethodGetAccount = "/" + ServiceName + "/GetAccount"
)

type WalletSimulatorServer interface {
	PayQRIS(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	TopUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	StartKYC(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func RegisterWalletSimulatorServer(s grpc.ServiceRegistrar, srv WalletSimulatorServer) {
	s.RegisterService(&serviceDesc, srv)
}

type serverMethod func(WalletSimulatorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call serverMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(WalletSimulatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(WalletSimulatorServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WalletSimulatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PayQRIS", Handler: unaryHandler(MethodPayQRIS, WalletSimulatorServer.PayQRIS)},
		{MethodName: "TopUp", Handler: unaryHandler(MethodTopUp, WalletSimulatorServer.TopUp)},
		{MethodName: "StartKYC", Handler: unaryHandler(MethodStartKYC, WalletSimulatorServer.StartKYC)},
		{MethodName: "GetAccount", Handler: unaryHandler(MethodGetAccount, WalletSimulatorServer.GetAccount)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "walletsim/v1/wallet.proto",
}

// Client invokes WalletSimulator methods over an established connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PayQRIS(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPayQRIS, req, opts...)
}

func (c *Client) TopUp(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodTopUp, req, opts...)
}

func (c *Client) StartKYC(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodStartKYC, req, opts...)
}

func (c *Client) GetAccount(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetAccount, req, opts...)
}
