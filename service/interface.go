// Package service defines the lifecycle contract for long-lived
// infrastructure subsystems and the Hub container that orders their
// startup and shutdown.
package service

// Service is the lifecycle interface for infrastructure subsystems:
// the terminal, the bell speaker, the config watcher.
//
// Lifecycle:
//  1. Construction (via factory or literal)
//  2. Init(args...) — configuration from parsed flags/config
//  3. Start() — launch background goroutines
//  4. [runtime operation]
//  5. Stop() — halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before
	// this one. Nil or empty means no dependencies.
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation, launching goroutines if any.
	// Called after all services have initialized.
	Start() error

	// Stop halts service operation and releases resources.
	// Must be idempotent.
	Stop() error
}
