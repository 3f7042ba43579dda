// Package common holds helpers shared by the control commands.
//
// It provides a gRPC client for the control service with call timeouts and
// retried reads, and detects the local actor (username@hostname) that is sent
// along with every call for the monitor's audit log.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
