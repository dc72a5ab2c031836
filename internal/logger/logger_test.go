package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger
	Logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { Logger = prev })
	return &buf
}

func TestLevels(t *testing.T) {
	buf := capture(t)

	tests := []struct {
		fn    func(msg string, args ...any)
		level string
	}{
		{Debug, "DEBUG"},
		{Info, "INFO"},
		{Warn, "WARN"},
		{Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.fn("something happened")

			var rec struct {
				Level string `json:"level"`
				Msg   string `json:"msg"`
			}
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("log output is not valid JSON: %v", err)
			}
			if rec.Level != tt.level || rec.Msg != "something happened" {
				t.Errorf("record = %+v, want level %s", rec, tt.level)
			}
		})
	}
}

func TestAttributes(t *testing.T) {
	buf := capture(t)

	Warn("snapshot refresh failed", "error", "store unreachable")

	var rec struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if rec.Error != "store unreachable" {
		t.Errorf("error attr = %q, want the wrapped cause", rec.Error)
	}
}
