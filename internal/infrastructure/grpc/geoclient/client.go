package geoclient

import (
	"context"
	"fmt"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/grpc/geopb"
	"shiftserve/internal/infrastructure/logx"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

var _ application.Geocoder = (*Client)(nil)

// Client is a Geocoder backed by the worker's gRPC service.
type Client struct {
	conn    *grpc.ClientConn
	cli     geopb.GeocodeServiceClient
	Timeout time.Duration
}

func New(ctx context.Context, target string, timeout time.Duration, opts ...grpc.DialOption) (*Client, func(), error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.DialContext(ctx, target, opts...)
	if err != nil {
		return nil, nil, err
	}
	c := &Client{conn: conn, cli: geopb.NewGeocodeServiceClient(conn), Timeout: timeout}
	return c, func() { _ = conn.Close() }, nil
}

func (c *Client) Geocode(ctx context.Context, address string) (domain.GeocodeResult, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	resp, err := c.cli.Geocode(ctx, &geopb.GeocodeRequest{Address: address, TraceId: logx.TraceID(ctx)})
	if err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			return domain.GeocodeResult{}, fmt.Errorf("%w: %s", application.ErrNotFound, status.Convert(err).Message())
		case codes.InvalidArgument:
			return domain.GeocodeResult{}, fmt.Errorf("%w: %s", application.ErrBadRequest, status.Convert(err).Message())
		}
		return domain.GeocodeResult{}, fmt.Errorf("geocode rpc: %w", err)
	}
	return domain.GeocodeResult{Lat: resp.Lat, Lng: resp.Lng, DisplayName: resp.DisplayName}, nil
}
