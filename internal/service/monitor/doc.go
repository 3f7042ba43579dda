// Package monitor runs the power monitor loop.
//
// Every decision cycle reads the armed flag and, when armed, queries the power
// status. Armed and not on mains (battery, or a failed query) plays the alarm
// and re-checks after AlarmInterval; anything else re-checks after
// IdleInterval. Each cycle decides from scratch; there is no debounce.
package monitor
