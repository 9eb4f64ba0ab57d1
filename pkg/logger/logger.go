package logger

import (
	"go.uber.org/zap"
)

// Init builds the process-wide zap logger and installs it as the global.
// Development mode gets the human-readable console encoder.
func Init(appEnv string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)

	if appEnv == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(log)
	return log, nil
}
