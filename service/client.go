package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls a remote librarysort.Sorter service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{
		cc: cc,
	}
}

// Dial opens a plaintext connection to the service listening on addr.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	return grpc.DialContext(ctx, addr, opts...)
}

// Sort sends a comma separated line of integers and returns it sorted.
func (c *Client) Sort(ctx context.Context, line string, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, sortFullMethod, wrapperspb.String(line), out, opts...); err != nil {
		return "", err
	}

	return out.GetValue(), nil
}
