package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

// testAppender logs through `testing.TB` so each line is attributed to the test that produced it.
type testAppender struct {
	tb testing.TB
}

// NewTestAppender returns an appender writing console formatted lines to tb.
func NewTestAppender(tb testing.TB) Appender {
	return &testAppender{tb}
}

func (tapp *testAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	tapp.tb.Helper()
	line, err := formatLine(entry, fields)
	tapp.tb.Log(line)
	return err
}

func (tapp *testAppender) Sync() error {
	return nil
}
