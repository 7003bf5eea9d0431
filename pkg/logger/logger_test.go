package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitLevels(t *testing.T) {
	Init("debug")
	if !Log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug level should be enabled after Init(\"debug\")")
	}

	Init("WARN")
	if Log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info level should be disabled after Init(\"WARN\")")
	}
	if !Log.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("warn level should be enabled after Init(\"WARN\")")
	}

	Init("nonsense")
	if !Log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("unrecognized level should fall back to info")
	}
	if Log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("unrecognized level should not enable debug")
	}
}
