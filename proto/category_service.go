// Package categorypb declares the seci.v1.CategoryService gRPC service. The
// service is described in category_service.proto and uses only protobuf
// well-known message types, so the descriptor below is maintained by hand.
package categorypb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "seci.v1.CategoryService"

const (
	MethodSave             = "Save"
	MethodUpdate           = "Update"
	MethodFindAll          = "FindAll"
	MethodFindByID         = "FindById"
	MethodDeleteByID       = "DeleteById"
	MethodFindAllActive    = "FindAllActive"
	MethodFindAllWithStats = "FindAllWithStats"
)

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type CategoryServiceServer interface {
	Save(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Update(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FindAll(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	FindById(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	DeleteById(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	FindAllActive(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	FindAllWithStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func unary[T any, PT interface {
	*T
	proto.Message
}, R proto.Message](name string, call func(CategoryServiceServer, context.Context, PT) (R, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := PT(new(T))
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(CategoryServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(s, ctx, req.(PT))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var CategoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CategoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary[structpb.Struct](MethodSave, CategoryServiceServer.Save),
		unary[structpb.Struct](MethodUpdate, CategoryServiceServer.Update),
		unary[emptypb.Empty](MethodFindAll, CategoryServiceServer.FindAll),
		unary[wrapperspb.StringValue](MethodFindByID, CategoryServiceServer.FindById),
		unary[wrapperspb.StringValue](MethodDeleteByID, CategoryServiceServer.DeleteById),
		unary[emptypb.Empty](MethodFindAllActive, CategoryServiceServer.FindAllActive),
		unary[structpb.Struct](MethodFindAllWithStats, CategoryServiceServer.FindAllWithStats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proto/category_service.proto",
}

func RegisterCategoryServiceServer(s grpc.ServiceRegistrar, srv CategoryServiceServer) {
	s.RegisterService(&CategoryServiceDesc, srv)
}

// CategoryServiceClient is the raw client for the service.
type CategoryServiceClient interface {
	Save(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Update(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	FindAll(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	FindById(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteById(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	FindAllActive(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	FindAllWithStats(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type categoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCategoryServiceClient(cc grpc.ClientConnInterface) CategoryServiceClient {
	return &categoryServiceClient{cc: cc}
}

func invoke[R any](ctx context.Context, cc grpc.ClientConnInterface, method string, in proto.Message, opts []grpc.CallOption) (*R, error) {
	out := new(R)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *categoryServiceClient) Save(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodSave, in, opts)
}

func (c *categoryServiceClient) Update(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodUpdate, in, opts)
}

func (c *categoryServiceClient) FindAll(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, MethodFindAll, in, opts)
}

func (c *categoryServiceClient) FindById(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodFindByID, in, opts)
}

func (c *categoryServiceClient) DeleteById(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodDeleteByID, in, opts)
}

func (c *categoryServiceClient) FindAllActive(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, MethodFindAllActive, in, opts)
}

func (c *categoryServiceClient) FindAllWithStats(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodFindAllWithStats, in, opts)
}
