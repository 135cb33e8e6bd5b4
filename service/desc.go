package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	serviceName    = "librarysort.Sorter"
	sortFullMethod = "/" + serviceName + "/Sort"
)

// SorterServer is the server side of the librarysort.Sorter service. Requests
// and replies carry a comma separated line of integers.
type SorterServer interface {
	Sort(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// RegisterSorterServer registers srv with the gRPC server s.
func RegisterSorterServer(s grpc.ServiceRegistrar, srv SorterServer) {
	s.RegisterService(&sorterServiceDesc, srv)
}

func sortHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SorterServer).Sort(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: sortFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SorterServer).Sort(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var sorterServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SorterServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Sort",
			Handler:    sortHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "librarysort/sorter.proto",
}
