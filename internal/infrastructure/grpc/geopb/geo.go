// Package geopb defines the geocoding RPC contract. Messages cross the wire
// as google.protobuf.Struct, so the default proto codec carries them and no
// generated code is needed.
package geopb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const GeocodeService_Geocode_FullMethodName = "/geo.GeocodeService/Geocode"

type GeocodeRequest struct {
	Address string
	TraceId string
}

func (r *GeocodeRequest) GetAddress() string {
	if r == nil {
		return ""
	}
	return r.Address
}

func (r *GeocodeRequest) GetTraceId() string {
	if r == nil {
		return ""
	}
	return r.TraceId
}

// Struct is the wire form of the request.
func (r *GeocodeRequest) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"address":  structpb.NewStringValue(r.GetAddress()),
		"trace_id": structpb.NewStringValue(r.GetTraceId()),
	}}
}

func RequestFromStruct(s *structpb.Struct) *GeocodeRequest {
	f := s.GetFields()
	return &GeocodeRequest{
		Address: f["address"].GetStringValue(),
		TraceId: f["trace_id"].GetStringValue(),
	}
}

type GeocodeResponse struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

// Struct is the wire form of the response.
func (r *GeocodeResponse) Struct() *structpb.Struct {
	if r == nil {
		r = &GeocodeResponse{}
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"lat":          structpb.NewNumberValue(r.Lat),
		"lng":          structpb.NewNumberValue(r.Lng),
		"display_name": structpb.NewStringValue(r.DisplayName),
	}}
}

func ResponseFromStruct(s *structpb.Struct) *GeocodeResponse {
	f := s.GetFields()
	return &GeocodeResponse{
		Lat:         f["lat"].GetNumberValue(),
		Lng:         f["lng"].GetNumberValue(),
		DisplayName: f["display_name"].GetStringValue(),
	}
}

type GeocodeServiceClient interface {
	Geocode(ctx context.Context, in *GeocodeRequest, opts ...grpc.CallOption) (*GeocodeResponse, error)
}

type geocodeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGeocodeServiceClient(cc grpc.ClientConnInterface) GeocodeServiceClient {
	return &geocodeServiceClient{cc}
}

func (c *geocodeServiceClient) Geocode(ctx context.Context, in *GeocodeRequest, opts ...grpc.CallOption) (*GeocodeResponse, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GeocodeService_Geocode_FullMethodName, in.Struct(), out, opts...); err != nil {
		return nil, err
	}
	return ResponseFromStruct(out), nil
}

type GeocodeServiceServer interface {
	Geocode(context.Context, *GeocodeRequest) (*GeocodeResponse, error)
}

type UnimplementedGeocodeServiceServer struct{}

func (UnimplementedGeocodeServiceServer) Geocode(context.Context, *GeocodeRequest) (*GeocodeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Geocode not implemented")
}

func RegisterGeocodeServiceServer(s grpc.ServiceRegistrar, srv GeocodeServiceServer) {
	s.RegisterService(&GeocodeService_ServiceDesc, srv)
}

func _GeocodeService_Geocode_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	wire := new(structpb.Struct)
	if err := dec(wire); err != nil {
		return nil, err
	}
	in := RequestFromStruct(wire)
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GeocodeServiceServer).Geocode(ctx, req.(*GeocodeRequest))
	}
	var (
		resp interface{}
		err  error
	)
	if interceptor == nil {
		resp, err = handler(ctx, in)
	} else {
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: GeocodeService_Geocode_FullMethodName,
		}
		resp, err = interceptor(ctx, in, info, handler)
	}
	if err != nil {
		return nil, err
	}
	out, _ := resp.(*GeocodeResponse)
	return out.Struct(), nil
}

var GeocodeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "geo.GeocodeService",
	HandlerType: (*GeocodeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Geocode",
			Handler:    _GeocodeService_Geocode_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "geo.proto",
}
