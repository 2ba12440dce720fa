package telemetry

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFacadeWritesFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	restore := SetLogger(zap.New(core))
	defer restore()

	Info("analysis.complete", map[string]any{"overall": 72, "cached": false})
	Error("analysis.record_failed", map[string]any{"err": errors.New("boom")})
	Debug("noise", nil)

	entries := observed.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["overall"] != int64(72) || ctx["cached"] != false {
		t.Fatalf("unexpected fields: %v", ctx)
	}
	if entries[1].Level != zapcore.ErrorLevel || entries[1].ContextMap()["err"] != "boom" {
		t.Fatalf("unexpected error entry: %+v", entries[1])
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("production", "chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	l, err := New("dev", "debug")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug level should be enabled")
	}
}
