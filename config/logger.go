package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Logger struct {
	ZeroLogger *zerolog.Logger
}

// Log is exposed on the config package so every component logs the same way
var Log Logger

func (l *Logger) Debug(msg string, err ...error) {
	if len(err) == 1 {
		l.ZeroLogger.Debug().Err(err[0]).Msg(msg)
		return
	}
	l.ZeroLogger.Debug().Msg(msg)
}

func (l *Logger) Info(msg string, err ...error) {
	if len(err) == 1 {
		l.ZeroLogger.Info().Err(err[0]).Msg(msg)
		return
	}
	l.ZeroLogger.Info().Msg(msg)
}

func (l *Logger) Warn(msg string, err ...error) {
	if len(err) == 1 {
		l.ZeroLogger.Warn().Err(err[0]).Msg(msg)
		return
	}
	l.ZeroLogger.Warn().Msg(msg)
}

func (l *Logger) Error(msg string, err ...error) {
	if len(err) == 1 {
		l.ZeroLogger.Error().Err(err[0]).Msg(msg)
		return
	}
	l.ZeroLogger.Error().Msg(msg)
}

func (l *Logger) Fatal(msg string, err ...error) {
	if len(err) == 1 {
		l.ZeroLogger.Fatal().Err(err[0]).Msg(msg)
	}
	l.ZeroLogger.Fatal().Msg(msg)
}

func DoConfigureLogger(logLevel string, pretty bool) {
	var logger zerolog.Logger
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	Log.ZeroLogger = &logger

	// Set the log level (default to info)
	switch strings.ToLower(logLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
