package helpers

import (
	"fmt"

	"go.uber.org/zap"
)

// InitLogger builds the process logger and installs it as the zap global.
// Debug selects the development config (console encoder on stdout, debug
// level); otherwise the production JSON config is used.
func InitLogger(debug bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
		logger, err = z.Build()
	} else {
		logger, err = zap.NewProduction()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	zap.ReplaceGlobals(logger)

	return logger.Sugar(), nil
}
