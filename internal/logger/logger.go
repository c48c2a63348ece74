package logger

import "go.uber.org/zap"

// New builds the process logger: JSON output in production, the
// human-readable development encoder everywhere else.
func New(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
