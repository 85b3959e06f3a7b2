package grpcclient

import (
	"context"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/hsbu/gopay-api-demo/internal/walletrpc"
)

// Client talks to a WalletSimulator server on behalf of a single user.
type Client struct {
	client *walletrpc.Client
	conn   *grpc.ClientConn
	userID string
}

func NewClient(addr, userID string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		client: walletrpc.NewClient(conn),
		conn:   conn,
		userID: userID,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) PayQRIS(ctx context.Context, amount int64, merchant string) (map[string]any, error) {
	fields := map[string]any{"amount": amount}
	if merchant != "" {
		fields["merchant"] = merchant
	}
	return c.call(ctx, c.client.PayQRIS, fields)
}

func (c *Client) TopUp(ctx context.Context, amount int64) (map[string]any, error) {
	return c.call(ctx, c.client.TopUp, map[string]any{"amount": amount})
}

func (c *Client) StartKYC(ctx context.Context, nik, name string) (map[string]any, error) {
	return c.call(ctx, c.client.StartKYC, map[string]any{"nik": nik, "name": name})
}

func (c *Client) GetAccount(ctx context.Context) (map[string]any, error) {
	return c.call(ctx, c.client.GetAccount, map[string]any{})
}

type method func(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

func (c *Client) call(ctx context.Context, m method, fields map[string]any) (map[string]any, error) {
	if c.userID != "" {
		fields["user_id"] = c.userID
	}
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	resp, err := m(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.AsMap(), nil
}

// DenialCode returns the machine-readable reason attached to a denied call,
// or "" when err carries none.
func DenialCode(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
