package control

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// ActorMetadataKey carries the caller identity (username@hostname) in gRPC metadata.
const ActorMetadataKey = "x-battery-alarm-actor"

// ActorFromContext extracts the actor sent by a control client, or "unknown".
func ActorFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "unknown"
	}

	if values := md.Get(ActorMetadataKey); len(values) > 0 && values[0] != "" {
		return values[0]
	}

	return "unknown"
}
