// Package metrics provides the observability hooks for the recipe service.
//
// # Design Philosophy
//
// This package implements the Null Object pattern to enable metrics collection
// without explicit nil checks throughout the codebase. Components default to
// NoopRecorder, which implements Recorder with empty methods.
//
// # Architecture
//
//  1. Recorder interface - Defines all metrics operations
//  2. NoopRecorder - Default implementation that does nothing
//  3. PrometheusRecorder - Registers collectors on a prometheus.Registry
//
// # Usage Pattern
//
// Components receive a Recorder through dependency injection:
//
//	sessions := daemon.NewSessionManager(daemon.SessionOptions{Recorder: rec})
//
// The serve command swaps in a PrometheusRecorder when metrics are enabled
// and mounts HTTPHandler on the configured path.
package metrics
