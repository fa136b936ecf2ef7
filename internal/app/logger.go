// Package app wires configuration, storage, services, and the router
// into a runnable process.
package app

import (
	"os"

	"github.com/chasecee/cut-calc/internal/logger"
)

// InitializeLogger configures the global logger from LOG_LEVEL and
// LOG_PRETTY before anything else starts emitting.
func InitializeLogger() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger.Init(level, os.Getenv("LOG_PRETTY") == "true")
}
