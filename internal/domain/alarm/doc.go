// Package alarm holds the armed/disarmed switch shared by the power monitor
// and the control surface.
//
// ArmedFlag is lock-free: readers never wait for a toggle and a toggle never
// waits for the monitor.
package alarm
