package webui

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aiphoto_backend/logging"

	"go.uber.org/zap/zapcore"
)

func newBufferedMiddleware(skipPaths []string) (*LoggingMiddleware, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	sink := zapcore.AddSync(buf)
	core := logging.NewMultiCoreWithWriters(zapcore.DebugLevel, sink, sink, false)
	logger := logging.NewLoggerWithCore(core, false)
	return NewLoggingMiddleware(logger, skipPaths), buf
}

func TestLoggingMiddleware_LogsRequests(t *testing.T) {
	mw, buf := newBufferedMiddleware(nil)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("middleware altered status: got %d", rec.Code)
	}

	out := buf.String()
	if !strings.Contains(out, "/api/generate") {
		t.Errorf("log missing request path: %s", out)
	}
	if !strings.Contains(out, "418") {
		t.Errorf("log missing status code: %s", out)
	}
}

func TestLoggingMiddleware_SkipPaths(t *testing.T) {
	mw, buf := newBufferedMiddleware([]string{"/health"})

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if buf.Len() != 0 {
		t.Errorf("expected no log output for skipped path, got: %s", buf.String())
	}
}

func TestResponseWriterWrapper_DefaultsTo200(t *testing.T) {
	mw, buf := newBufferedMiddleware(nil)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("implicit ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "200") {
		t.Errorf("expected 200 in log output: %s", buf.String())
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "10.0.0.5:1234",
			want:       "10.0.0.5",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.5:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.5:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.5:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
