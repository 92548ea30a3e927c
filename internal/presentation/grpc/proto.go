package grpc

// proto.go carries the hand-written service descriptor for
// guestrisk.v1.GuestRiskService. Messages are plain structs encoded with the
// JSON codec in codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "guestrisk.v1.GuestRiskService"

// Full method names, as seen by interceptors.
const (
	MethodPredictGuest = "/" + ServiceName + "/PredictGuest"
	MethodPredictBatch = "/" + ServiceName + "/PredictBatch"
	MethodAnalyzeTags  = "/" + ServiceName + "/AnalyzeTags"
)

// GuestRiskServiceServer is the server API for GuestRiskService.
type GuestRiskServiceServer interface {
	PredictGuest(context.Context, *PredictGuestRequest) (*PredictGuestResponse, error)
	PredictBatch(context.Context, *PredictBatchRequest) (*PredictBatchResponse, error)
	AnalyzeTags(context.Context, *AnalyzeTagsRequest) (*AnalyzeTagsResponse, error)
	mustEmbedUnimplementedGuestRiskServiceServer()
}

// UnimplementedGuestRiskServiceServer provides forward-compatible default implementations.
type UnimplementedGuestRiskServiceServer struct{}

func (UnimplementedGuestRiskServiceServer) PredictGuest(context.Context, *PredictGuestRequest) (*PredictGuestResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PredictGuest not implemented")
}
func (UnimplementedGuestRiskServiceServer) PredictBatch(context.Context, *PredictBatchRequest) (*PredictBatchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PredictBatch not implemented")
}
func (UnimplementedGuestRiskServiceServer) AnalyzeTags(context.Context, *AnalyzeTagsRequest) (*AnalyzeTagsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeTags not implemented")
}
func (UnimplementedGuestRiskServiceServer) mustEmbedUnimplementedGuestRiskServiceServer() {}

// RegisterGuestRiskServiceServer registers the GuestRiskServiceServer with the gRPC server.
func RegisterGuestRiskServiceServer(s grpclib.ServiceRegistrar, srv GuestRiskServiceServer) {
	s.RegisterService(&guestRiskServiceDesc, srv)
}

var guestRiskServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GuestRiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "PredictGuest", Handler: predictGuestHandler},
		{MethodName: "PredictBatch", Handler: predictBatchHandler},
		{MethodName: "AnalyzeTags", Handler: analyzeTagsHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "guestrisk/v1/guestrisk.proto",
}

func predictGuestHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(PredictGuestRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GuestRiskServiceServer).PredictGuest(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodPredictGuest}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GuestRiskServiceServer).PredictGuest(ctx, req.(*PredictGuestRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func predictBatchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(PredictBatchRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GuestRiskServiceServer).PredictBatch(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodPredictBatch}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GuestRiskServiceServer).PredictBatch(ctx, req.(*PredictBatchRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func analyzeTagsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(AnalyzeTagsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GuestRiskServiceServer).AnalyzeTags(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodAnalyzeTags}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GuestRiskServiceServer).AnalyzeTags(ctx, req.(*AnalyzeTagsRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// GuestRiskServiceClient is the client API for GuestRiskService.
type GuestRiskServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewGuestRiskServiceClient wraps a connection. Every call uses the JSON codec.
func NewGuestRiskServiceClient(cc grpclib.ClientConnInterface) *GuestRiskServiceClient {
	return &GuestRiskServiceClient{cc: cc}
}

func (c *GuestRiskServiceClient) PredictGuest(ctx context.Context, in *PredictGuestRequest, opts ...grpclib.CallOption) (*PredictGuestResponse, error) {
	out := new(PredictGuestResponse)
	if err := c.cc.Invoke(ctx, MethodPredictGuest, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GuestRiskServiceClient) PredictBatch(ctx context.Context, in *PredictBatchRequest, opts ...grpclib.CallOption) (*PredictBatchResponse, error) {
	out := new(PredictBatchResponse)
	if err := c.cc.Invoke(ctx, MethodPredictBatch, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GuestRiskServiceClient) AnalyzeTags(ctx context.Context, in *AnalyzeTagsRequest, opts ...grpclib.CallOption) (*AnalyzeTagsResponse, error) {
	out := new(AnalyzeTagsResponse)
	if err := c.cc.Invoke(ctx, MethodAnalyzeTags, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withJSON(opts []grpclib.CallOption) []grpclib.CallOption {
	return append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
}
