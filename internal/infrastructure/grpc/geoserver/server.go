package geoserver

import (
	"context"
	"errors"

	"shiftserve/internal/application"
	"shiftserve/internal/infrastructure/grpc/geopb"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server exposes a Geocoder over gRPC.
type Server struct {
	Geocoder application.Geocoder
	Log      *zap.Logger
	geopb.UnimplementedGeocodeServiceServer
}

func NewServer(g application.Geocoder, log *zap.Logger) *Server {
	return &Server{Geocoder: g, Log: log}
}

func (s *Server) Geocode(ctx context.Context, req *geopb.GeocodeRequest) (*geopb.GeocodeResponse, error) {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	addr := req.GetAddress()
	log = log.With(zap.String("address", addr), zap.String("trace_id", req.GetTraceId()))

	if addr == "" {
		log.Warn("grpc_geocode.empty_address")
		return nil, status.Error(codes.InvalidArgument, "address is required")
	}

	res, err := s.Geocoder.Geocode(ctx, addr)
	switch {
	case err == nil:
	case errors.Is(err, application.ErrNotFound):
		log.Info("grpc_geocode.no_match")
		return nil, status.Error(codes.NotFound, "address not found")
	case errors.Is(err, application.ErrBadRequest):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	default:
		log.Warn("grpc_geocode.provider_error", zap.Error(err))
		return nil, status.Error(codes.Unavailable, err.Error())
	}
	log.Info("grpc_geocode.success", zap.Float64("lat", res.Lat), zap.Float64("lng", res.Lng))
	return &geopb.GeocodeResponse{Lat: res.Lat, Lng: res.Lng, DisplayName: res.DisplayName}, nil
}
