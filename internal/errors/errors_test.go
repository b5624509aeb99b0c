package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"olist-dashboard/internal/observability"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Internal("x"), http.StatusInternalServerError},
		{ValidationWrap(stderrors.New("x"), "x"), http.StatusBadRequest},
		{BadRequest("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{RateLimit("x"), http.StatusTooManyRequests},
		{ServiceUnavailable("x"), http.StatusServiceUnavailable},
		{New("SOMETHING_ELSE", "x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			if tt.err.StatusCode != tt.want {
				t.Errorf("StatusCode = %d, want %d", tt.err.StatusCode, tt.want)
			}
		})
	}
}

func TestWrap_Unwrap(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := InternalWrap(cause, "load failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	if got := err.Error(); got != "INTERNAL_ERROR: load failed (caused by: disk on fire)" {
		t.Errorf("Error() = %q", got)
	}

	v := ValidationWrap(cause, "bad input")
	if v.Details != "disk on fire" {
		t.Errorf("Details = %q, want cause text", v.Details)
	}
}

func TestFrom(t *testing.T) {
	appErr := NotFound("missing")
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"app error", appErr, CodeNotFound},
		{"wrapped app error", fmt.Errorf("ctx: %w", appErr), CodeNotFound},
		{"deadline", fmt.Errorf("render: %w", context.DeadlineExceeded), CodeServiceUnavail},
		{"plain", stderrors.New("boom"), CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := From(tt.err).Code; got != tt.want {
				t.Errorf("From() code = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	ctx := observability.WithRequestID(context.Background(), "req-1")
	w := httptest.NewRecorder()

	WriteError(ctx, w, testLogger(), ValidationWrap(stderrors.New("start after end"), "start date is after end date"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Error("success should be false")
	}
	if resp.Error.Code != CodeValidation || resp.Error.RequestID != "req-1" {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestWriteError_PlainError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), w, testLogger(), stderrors.New("secret detail"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Message != "An unexpected error occurred" {
		t.Errorf("message = %q, cause should not leak", resp.Error.Message)
	}
}

func TestWriteSuccessWithHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessWithHeaders(w, map[string]int{"orders": 2}, map[string]string{"Cache-Control": "max-age=60"})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Header().Get("Cache-Control") != "max-age=60" {
		t.Errorf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}

	var resp struct {
		Data    map[string]int `json:"data"`
		Success bool           `json:"success"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Data["orders"] != 2 {
		t.Errorf("response = %+v", resp)
	}
}
