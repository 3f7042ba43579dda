// Package logger wraps zap with a process-wide sugared logger.
//
// The logger travels through context.Context: commands name their scope with
// WithName, attach fields with WithKV, and the package-level helpers
// (InfoKV, Warnf, ...) pull the scoped logger back out with FromContext.
package logger
