// Package control exposes the control surface over gRPC.
//
// The batteryalarm.v1.ControlService has two unary methods, GetArmed and
// ToggleArmed, both taking google.protobuf.Empty and returning
// google.protobuf.BoolValue, so no generated message code is needed.
package control
