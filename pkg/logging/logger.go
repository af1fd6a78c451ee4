// Package logging builds the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
)

// NewLogger creates a zap logger appropriate for the given environment.
// Local development gets the human-readable console encoder; everything
// else logs structured JSON at info level.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
