package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// wraps a zap sugared logger for CLI use
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger writing to stderr. Verbose enables
// debug-level messages.
func NewLogger(verbose bool) *Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return &Logger{zap.NewNop().Sugar()}
	}

	return &Logger{logger.Sugar()}
}
