// Package server is the composition root of `battery-alarm run`.
//
// It builds the armed flag, starts the power monitor goroutine and serves the
// control gRPC API (plus an optional Prometheus endpoint) until the context
// is canceled.
package server
