// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about export runs and payload delivery.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(&myExportHooks{})
//	    observability.SetSinkHooks(&mySinkHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, id, format)
//	// ... run export ...
//	observability.Export().OnExportComplete(ctx, id, format, size, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the export controller.
type ExportHooks interface {
	// OnExportStart records the beginning of an export run.
	OnExportStart(ctx context.Context, exportID, format string)

	// OnStage records a progress stage transition within an export run.
	OnStage(ctx context.Context, exportID, stage string, percentage int)

	// OnExportComplete records the end of an export run, successful or not.
	OnExportComplete(ctx context.Context, exportID, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Sink Hooks
// =============================================================================

// SinkHooks receives events from payload delivery sinks.
type SinkHooks interface {
	// OnDeliverStart records the start of a payload delivery.
	OnDeliverStart(ctx context.Context, sinkKind, filename string, size int)

	// OnDeliverComplete records the outcome of a payload delivery.
	OnDeliverComplete(ctx context.Context, sinkKind, filename string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string, string) {}
func (NoopExportHooks) OnStage(context.Context, string, string, int)  {}
func (NoopExportHooks) OnExportComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopSinkHooks is a no-op implementation of SinkHooks.
type NoopSinkHooks struct{}

func (NoopSinkHooks) OnDeliverStart(context.Context, string, string, int)                     {}
func (NoopSinkHooks) OnDeliverComplete(context.Context, string, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exportHooks ExportHooks = NoopExportHooks{}
	sinkHooks   SinkHooks   = NoopSinkHooks{}
	hooksMu     sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export operations.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetSinkHooks registers custom sink hooks.
// This should be called once at application startup before any deliveries.
func SetSinkHooks(h SinkHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sinkHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Sink returns the registered sink hooks.
func Sink() SinkHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sinkHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	sinkHooks = NoopSinkHooks{}
}
