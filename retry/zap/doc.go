// Package zap provides the zap-backed implementation of the log abstraction.
//
// It bridges retry/log to zap while preserving structured fields, adding
// OpenTelemetry trace correlation, and exposing a runtime-adjustable level.
package zap
