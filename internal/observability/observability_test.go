package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"olist-dashboard/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerTo_JSONCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "info", Format: "json"})

	ctx := WithRequestID(context.Background(), "req-123")
	logger.InfoContext(ctx, "hello", "k", "v")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", entry["request_id"])
	}
	if entry["k"] != "v" {
		t.Errorf("k = %v, want v", entry["k"])
	}
}

func TestNewLoggerTo_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "warn", Format: "text"}).With("component", "test")

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "msg=kept") || !strings.Contains(out, "component=test") {
		t.Errorf("text output = %q, want kept record with component attr", out)
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	if id := GetRequestID(context.Background()); id != "" {
		t.Errorf("GetRequestID() = %q, want empty", id)
	}
}

func TestStartSpan_Nesting(t *testing.T) {
	ctx, parent := StartSpan(context.Background(), "parent")
	_, child := StartSpan(ctx, "child")

	if parent.TraceID == "" || len(parent.SpanID) != 16 {
		t.Errorf("parent ids = %q/%q", parent.TraceID, parent.SpanID)
	}
	if child.TraceID != parent.TraceID {
		t.Errorf("child trace = %q, want %q", child.TraceID, parent.TraceID)
	}
	if child.ParentID != parent.SpanID {
		t.Errorf("child parent = %q, want %q", child.ParentID, parent.SpanID)
	}
	if GetSpan(ctx) != parent {
		t.Error("GetSpan() should return the span stored in the context")
	}
}

func TestSpan_End(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "debug", Format: "json"})

	ctx, span := StartSpan(context.Background(), "work")
	span.SetTag("rows", "3")
	span.SetError(errors.New("boom"))
	span.End(ctx, logger)

	if span.Status != SpanStatusError || span.Error != "boom" {
		t.Errorf("span = %+v, want error status", span)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["level"] != "WARN" || entry["operation"] != "work" || entry["tag.rows"] != "3" {
		t.Errorf("span log = %v", entry)
	}
	if entry["trace_id"] != span.TraceID {
		t.Errorf("trace_id = %v, want %s", entry["trace_id"], span.TraceID)
	}

	span.End(ctx, nil)
}
