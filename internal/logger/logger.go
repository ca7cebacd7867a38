package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the application logger: JSON to stdout, or a console
// writer in development for readability.
func New(environment string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if environment == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}
