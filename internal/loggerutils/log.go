package loggerutils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/awstools/ltclone/internal/envs"
)

const defaultLogLevel = zerolog.InfoLevel

var isLogInit = false

// Init initializes the logging framework. The input is the module name used
// as a logging prefix; the level is taken from the GOLANG_LOG env variable,
// falling back to info.
func Init(moduleName string) {
	if isLogInit {
		return
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(envs.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = defaultLogLevel
	}
	logger := zerolog.New(os.Stderr).With().Str("module", moduleName).Logger().
		Level(level).
		Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	if level == zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger
	isLogInit = true
}
