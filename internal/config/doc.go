// Package config loads battery-alarm settings.
//
// Settings come from a YAML file, an optional dotenv file and BATTERY_ALARM_*
// environment variables, in that order of increasing precedence.
package config
