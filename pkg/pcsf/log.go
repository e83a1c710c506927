package pcsf

import "github.com/kittclouds/gokitt/internal/logging"

// Level and Logger re-export internal/logging's contract so callers never
// need to import an internal package to implement a sink.
type Level = logging.Level

const (
	LevelTrace   = logging.LevelTrace
	LevelDebug   = logging.LevelDebug
	LevelInfo    = logging.LevelInfo
	LevelWarning = logging.LevelWarning
	LevelError   = logging.LevelError
	LevelFatal   = logging.LevelFatal
)

type Logger = logging.Logger

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return logging.Nop() }
