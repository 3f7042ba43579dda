//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/oshokin/battery-alarm/internal/api/grpc/control"
	"github.com/oshokin/battery-alarm/internal/config"
	"github.com/oshokin/battery-alarm/internal/logger"
)

// Client wraps the control service client with timeouts and retries.
type Client struct {
	// conn is the underlying gRPC connection to the monitor.
	conn *grpc.ClientConn
	// api is the control service client.
	api api.ControlServiceClient

	// callTimeout bounds a single RPC.
	callTimeout time.Duration
	// retryWindow bounds the retries of idempotent reads.
	retryWindow time.Duration
	// actor is sent with every call.
	actor string
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets the timeout of a single call.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithRetryWindow sets how long Current keeps retrying an unreachable monitor.
// Zero disables retries.
func WithRetryWindow(window time.Duration) Option {
	return func(c *Client) {
		if window >= 0 {
			c.retryWindow = window
		}
	}
}

// WithActor sets the identity reported to the monitor.
func WithActor(actor string) Option {
	return func(c *Client) {
		c.actor = actor
	}
}

const (
	// retryInitialInterval is the first pause between read retries.
	retryInitialInterval = 100 * time.Millisecond
	// retryMaxInterval caps the pause between read retries.
	retryMaxInterval = time.Second
)

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial creates a client for the monitor at address.
// The control API is meant for loopback use, so the transport is insecure.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial battery-alarm monitor: %w", err)
	}

	client := newClient(conn, api.NewControlServiceClient(conn))

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func newClient(conn *grpc.ClientConn, controlClient api.ControlServiceClient) *Client {
	return &Client{
		conn:        conn,
		api:         controlClient,
		callTimeout: config.DefaultTimeout,
		retryWindow: config.DefaultTimeout,
	}
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Current returns the armed state, retrying while the monitor is unreachable.
func (c *Client) Current(ctx context.Context) (bool, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.MaxInterval = retryMaxInterval
	bo.MaxElapsedTime = c.retryWindow

	var policy backoff.BackOff = bo
	if c.retryWindow == 0 {
		policy = &backoff.StopBackOff{}
	}

	operation := func() (*wrapperspb.BoolValue, error) {
		callCtx, cancel := c.callContext(ctx)
		defer cancel()

		resp, err := c.api.GetArmed(callCtx, new(emptypb.Empty))
		if err != nil {
			if status.Code(err) != codes.Unavailable {
				return nil, backoff.Permanent(err)
			}

			return nil, err
		}

		return resp, nil
	}

	notify := func(err error, next time.Duration) {
		logger.DebugKV(ctx, "Monitor unavailable, retrying", "error", err, "next_attempt", next.String())
	}

	resp, err := backoff.RetryNotifyWithData[*wrapperspb.BoolValue](operation, backoff.WithContext(policy, ctx), notify)
	if err != nil {
		return false, fmt.Errorf("get armed state: %w", err)
	}

	return resp.GetValue(), nil
}

// Toggle flips the armed state once and returns the new value.
// It is never retried: a lost response would otherwise flip the state twice.
func (c *Client) Toggle(ctx context.Context) (bool, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ToggleArmed(callCtx, new(emptypb.Empty))
	if err != nil {
		return false, fmt.Errorf("toggle armed state: %w", err)
	}

	return resp.GetValue(), nil
}

// callContext returns a context with the client's call timeout and actor metadata.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.actor != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, api.ActorMetadataKey, c.actor)
	}

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
