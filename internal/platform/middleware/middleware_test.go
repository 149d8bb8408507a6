package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// runThrough sends one request through mw and the given handler.
func runThrough(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, mw(handler)(c)
}

// logLine parses the single JSON line buf holds.
func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log output is not one JSON line: %v (%q)", err, buf.String())
	}
	return line
}

func TestRequestIDAssignsAndPropagates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)

	var echoID, ctxID string
	rec, err := runThrough(t, RequestID(), req, func(c echo.Context) error {
		echoID, _ = c.Get("request_id").(string)
		ctxID = RequestIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if echoID == "" {
		t.Fatal("expected a generated request id")
	}
	if ctxID != echoID {
		t.Errorf("request context carries %q, echo context carries %q", ctxID, echoID)
	}
	if got := rec.Header().Get(RequestIDHeader); got != echoID {
		t.Errorf("response header carries %q, want %q", got, echoID)
	}
}

func TestRequestIDHonorsProxySuppliedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	req.Header.Set(RequestIDHeader, "edge-7f3a")

	rec, err := runThrough(t, RequestID(), req, func(c echo.Context) error {
		if rid, _ := c.Get("request_id").(string); rid != "edge-7f3a" {
			t.Errorf("expected the proxy id, got %q", rid)
		}
		return c.NoContent(http.StatusOK)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "edge-7f3a" {
		t.Errorf("expected edge-7f3a echoed back, got %q", got)
	}
}

func TestLoggerRecordsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/12", nil)
	_, err := runThrough(t, Logger(logger), req, func(c echo.Context) error {
		c.Set("request_id", "req-12")
		c.Set("user_id", "doctor-3")
		return c.String(http.StatusOK, "ok")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := logLine(t, &buf)
	if line["level"] != "info" {
		t.Errorf("expected an info line, got level %v", line["level"])
	}
	if line["method"] != "GET" || line["path"] != "/api/v1/customers/12" {
		t.Errorf("wrong method/path in log: %v %v", line["method"], line["path"])
	}
	if line["request_id"] != "req-12" {
		t.Errorf("expected request_id req-12, got %v", line["request_id"])
	}
	if line["user_id"] != "doctor-3" {
		t.Errorf("expected the authenticated user in the log, got %v", line["user_id"])
	}
}

func TestLoggerMarksHandlerErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/99", nil)
	_, err := runThrough(t, Logger(logger), req, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "customer not found")
	})
	if err == nil {
		t.Fatal("expected the handler error to propagate")
	}

	line := logLine(t, &buf)
	if line["level"] != "error" {
		t.Errorf("expected an error line, got level %v", line["level"])
	}
	if _, ok := line["user_id"]; ok {
		t.Error("unauthenticated request must not log a user_id")
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", nil)
	_, err := runThrough(t, Recovery(logger), req, func(c echo.Context) error {
		panic("nil invoice line")
	})

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", httpErr.Code)
	}

	line := logLine(t, &buf)
	if line["panic"] != "nil invoice line" {
		t.Errorf("expected the panic value in the log, got %v", line["panic"])
	}
	if stack, _ := line["stack"].(string); stack == "" {
		t.Error("expected a stack trace in the log")
	}
}

func TestRecoveryLeavesHealthyHandlersAlone(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec, err := runThrough(t, Recovery(logger), req, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %q", buf.String())
	}
}
