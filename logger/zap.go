package logger

import "go.uber.org/zap"

type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger adapts a zap.Logger as Logger.
func NewZapLogger(l *zap.Logger) Logger {
	return zapLogger{s: l.Sugar()}
}

func (z zapLogger) Debugf(format string, args ...interface{}) {
	z.s.Debugf(format, args...)
}

func (z zapLogger) Infof(format string, args ...interface{}) {
	z.s.Infof(format, args...)
}

func (z zapLogger) Warnf(format string, args ...interface{}) {
	z.s.Warnf(format, args...)
}

func (z zapLogger) Errorf(format string, args ...interface{}) {
	z.s.Errorf(format, args...)
}
