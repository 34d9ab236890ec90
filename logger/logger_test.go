package logger_test

import (
	"testing"

	"github.com/boookk/bithumb-practice/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	fakeFormat = "fake format: %v"
	fakeArgs   = []interface{}{"fake args"}
)

func TestSetLogger(t *testing.T) {
	defer logger.SetLevel(logger.LevelInfo)
	logger.SetLevel(logger.LevelDebug)

	call := func() {
		logger.Debugf(fakeFormat, fakeArgs...)
		logger.Infof(fakeFormat, fakeArgs...)
		logger.Warnf(fakeFormat, fakeArgs...)
		logger.Errorf(fakeFormat, fakeArgs...)
	}

	call()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l := NewMockLogger(ctrl)
	l.EXPECT().Debugf(gomock.Any(), gomock.Any()).Times(1)
	l.EXPECT().Infof(gomock.Any(), gomock.Any()).Times(2)
	l.EXPECT().Warnf(gomock.Any(), gomock.Any()).Times(2)
	l.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(2)

	logger.SetLogger(l)
	assert.Equal(t, logger.LevelDebug, logger.GetLevel(), "wrong logger level")
	assert.True(t, logger.IsDebugEnabled(), "should be enabled")

	call()

	logger.SetLevel(logger.LevelInfo)
	assert.False(t, logger.IsDebugEnabled(), "should be disabled")
	call()

	logger.SetLevel(logger.LevelDebug)
	logger.SetLogger(nil)
	call()
}

func TestZapLogger(t *testing.T) {
	defer logger.SetLogger(nil)
	defer logger.SetLevel(logger.LevelInfo)

	core, logs := observer.New(zapcore.DebugLevel)
	logger.SetLogger(logger.NewZapLogger(zap.New(core)))
	logger.SetLevel(logger.LevelWarn)

	logger.Infof("dropped %d", 1)
	logger.Warnf("kept %d", 2)
	logger.Errorf("kept %d", 3)

	entries := logs.AllUntimed()
	assert.Len(t, entries, 2)
	assert.Equal(t, "kept 2", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "kept 3", entries[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", logger.LevelDebug.String())
	assert.Equal(t, "INFO", logger.LevelInfo.String())
	assert.Equal(t, "WARN", logger.LevelWarn.String())
	assert.Equal(t, "ERROR", logger.LevelError.String())
	assert.Equal(t, "UNKNOWN", logger.Level(42).String())
}
