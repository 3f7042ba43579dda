// Package power reports whether the host runs on mains power.
package power
