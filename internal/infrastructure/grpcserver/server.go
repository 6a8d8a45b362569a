package grpcserver

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"komari/internal/domain/result"
	"komari/pkg/logger"
)

// ServiceName is the health service name reporting the catalog connection.
const ServiceName = "komari.catalog"

// Server exposes grpc.health.v1.Health. The catalog service status follows
// the connection probe.
type Server struct {
	config Config
	server *grpc.Server
	health *health.Server
}

func New(cfg Config) *Server {
	s := grpc.NewServer()
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)

	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_UNKNOWN)

	return &Server{
		config: cfg,
		server: s,
		health: h,
	}
}

func (s *Server) Start() error {
	listener, err := net.Listen("tcp", net.JoinHostPort(s.config.Bind, fmt.Sprint(s.config.Port)))
	if err != nil {
		return err
	}

	return s.ServeOn(listener)
}

func (s *Server) ServeOn(listener net.Listener) error {
	logger.Info("grpc health server listening", "addr", listener.Addr().String())

	return s.server.Serve(listener)
}

// Follow applies every probe envelope to the catalog status until updates
// closes or ctx is done.
func (s *Server) Follow(ctx context.Context, updates <-chan result.Result[int]) {
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-updates:
			if !ok {
				return
			}

			status := Status(r)
			s.health.SetServingStatus(ServiceName, status)
			logger.Debug("catalog health updated", "status", status.String())
		}
	}
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

// Status maps a probe envelope to a serving status.
func Status(r result.Result[int]) healthpb.HealthCheckResponse_ServingStatus {
	return result.Match(r,
		func() healthpb.HealthCheckResponse_ServingStatus { return healthpb.HealthCheckResponse_UNKNOWN },
		func(int) healthpb.HealthCheckResponse_ServingStatus { return healthpb.HealthCheckResponse_SERVING },
		func(error) healthpb.HealthCheckResponse_ServingStatus { return healthpb.HealthCheckResponse_NOT_SERVING },
	)
}
