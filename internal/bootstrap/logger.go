package bootstrap

import (
	"strings"

	"go.uber.org/zap"
)

// NewLogger returns a development logger for dev environments and a JSON production
// logger otherwise.
func NewLogger(appEnv string) (*zap.Logger, error) {
	switch strings.ToLower(strings.TrimSpace(appEnv)) {
	case "development", "dev", "local", "":
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}
