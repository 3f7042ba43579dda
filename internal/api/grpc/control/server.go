package control

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/battery-alarm/internal/logger"
)

// Surface abstracts the control operations the transport depends on.
type Surface interface {
	Current() bool
	Toggle() bool
}

// Server implements ControlServiceServer on top of a Surface.
type Server struct {
	// surface reads and flips the armed flag.
	surface Surface
}

// NewServer wires surface into a gRPC handler.
func NewServer(surface Surface) *Server {
	return &Server{
		surface: surface,
	}
}

// GetArmed returns the current armed state.
func (s *Server) GetArmed(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	if s.surface == nil {
		return nil, status.Error(codes.Unavailable, "control surface is not ready")
	}

	armed := s.surface.Current()
	logger.DebugKV(ctx, "Armed state requested", "armed", armed)

	return wrapperspb.Bool(armed), nil
}

// ToggleArmed flips the armed state and returns the new one.
func (s *Server) ToggleArmed(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	if s.surface == nil {
		return nil, status.Error(codes.Unavailable, "control surface is not ready")
	}

	armed := s.surface.Toggle()
	logger.InfoKV(ctx, "Armed state toggled", "armed", armed, "actor", ActorFromContext(ctx))

	return wrapperspb.Bool(armed), nil
}
