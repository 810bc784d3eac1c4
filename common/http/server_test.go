package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

var errBusy = errors.New("busy")

func newTestServer() *HttpServer {
	s := NewHttpServer(
		WithMode(gin.TestMode),
		WithErrorMapper(func(err error) (int, int) {
			if errors.Is(err, errBusy) {
				return http.StatusLocked, CodeBusy
			}
			return http.StatusInternalServerError, CodeServerError
		}),
	)
	s.Use(RequestIDMiddleware())
	s.GET("/ok", func(c *Context) error {
		c.Success(map[string]string{"hello": "world"})
		return nil
	})
	s.GET("/busy", func(c *Context) error {
		return errBusy
	})
	return s
}

func TestServer_Success(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != CodeSuccess {
		t.Fatalf("unexpected code %d", resp.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestServer_ErrorMapper(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/busy", nil))
	if rec.Code != http.StatusLocked {
		t.Fatalf("expected 423, got %d", rec.Code)
	}
	var resp Response
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Code != CodeBusy || resp.Message != "busy" {
		t.Fatalf("unexpected body %+v", resp)
	}
}

func TestServer_RequestIDPassthrough(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc" {
		t.Fatalf("expected passthrough id, got %q", got)
	}
}

func TestRequestLine_CarriesUserAgentAndID(t *testing.T) {
	s := newTestServer()
	var line string
	s.GET("/line", func(c *Context) error {
		line = requestLine(c)
		return nil
	})
	req := httptest.NewRequest(http.MethodGet, "/line", nil)
	req.Header.Set("X-Request-ID", "req-7")
	req.Header.Set("User-Agent", "table-cam/2.1")
	s.Handler().ServeHTTP(httptest.NewRecorder(), req)
	if !strings.Contains(line, "GET /line") || !strings.Contains(line, "(table-cam/2.1)") || !strings.Contains(line, "request-id: req-7") {
		t.Fatalf("unexpected request line %q", line)
	}
}
