// Package client implements `battery-alarm status` and `battery-alarm toggle`.
//
// Both connect to a running monitor, print the armed state and exit.
package client
