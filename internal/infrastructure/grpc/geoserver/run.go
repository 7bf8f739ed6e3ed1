package geoserver

import (
	"context"
	"net"

	"shiftserve/internal/infrastructure/grpc/geopb"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// NewGRPCServer returns a grpc.Server with srv registered.
func NewGRPCServer(srv geopb.GeocodeServiceServer) *grpc.Server {
	gs := grpc.NewServer(grpc.Creds(insecure.NewCredentials()))
	geopb.RegisterGeocodeServiceServer(gs, srv)
	return gs
}

// RunServer starts a gRPC server and blocks until context is done.
func RunServer(ctx context.Context, addr string, srv geopb.GeocodeServiceServer, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	gs := NewGRPCServer(srv)
	errCh := make(chan error, 1)
	go func() {
		log.Info("grpc_server_started", zap.String("addr", addr))
		errCh <- gs.Serve(lis)
	}()
	select {
	case <-ctx.Done():
		log.Info("grpc_server_stopping")
		gs.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}
