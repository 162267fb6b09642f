package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines an interface for logging.
type Logger interface {
	// Info logs a message at InfoLevel.
	Info(msg string, fields ...zap.Field)

	// Warn logs a message at WarnLevel.
	Warn(msg string, fields ...zap.Field)

	// Error logs a message at ErrorLevel.
	Error(msg string, fields ...zap.Field)

	// Debug logs a message at DebugLevel.
	Debug(msg string, fields ...zap.Field)
}

type loggerImpl struct {
	zapLogger *zap.Logger
}

var _ Logger = &loggerImpl{}

// NewLogger creates a new logger.
// If fileName is non-empty, it pipes logs to the given file in addition to stdout.
func NewLogger(isProduction bool, fileName string, logLevel string) (Logger, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	var config zap.Config
	if isProduction {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stdout"}
	if fileName != "" {
		config.OutputPaths = append(config.OutputPaths, fileName)
	}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &loggerImpl{
		zapLogger: zapLogger,
	}, nil
}

// NewNoOpLogger returns a logger that discards all messages. Useful in tests.
func NewNoOpLogger() Logger {
	return &loggerImpl{
		zapLogger: zap.NewNop(),
	}
}

// Info implements Logger.
func (l *loggerImpl) Info(msg string, fields ...zap.Field) {
	l.zapLogger.Info(msg, fields...)
}

// Warn implements Logger.
func (l *loggerImpl) Warn(msg string, fields ...zap.Field) {
	l.zapLogger.Warn(msg, fields...)
}

// Error implements Logger.
func (l *loggerImpl) Error(msg string, fields ...zap.Field) {
	l.zapLogger.Error(msg, fields...)
}

// Debug implements Logger.
func (l *loggerImpl) Debug(msg string, fields ...zap.Field) {
	l.zapLogger.Debug(msg, fields...)
}
