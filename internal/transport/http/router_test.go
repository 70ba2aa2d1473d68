package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	rest "github.com/Gunvolt24/jobs_ingest/internal/transport/http"
	"github.com/gin-gonic/gin"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// pingerFunc — стаб хранилища для readyz.
type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, ping pingerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := rest.NewHandler(ping, noopLogger{}, time.Now().Add(-3*time.Second))
	return rest.NewRouter(h, "")
}

func TestHealthz_200(t *testing.T) {
	r := newTestRouter(t, func(context.Context) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("want status ok, got %+v", body)
	}
	if body["uptime"] == "" {
		t.Fatalf("uptime must be reported: %+v", body)
	}
}

func TestReadyz_StoreUp_200(t *testing.T) {
	r := newTestRouter(t, func(context.Context) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestReadyz_StoreDown_503(t *testing.T) {
	r := newTestRouter(t, func(context.Context) error { return errors.New("connection refused") })

	req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d, body=%s", w.Code, w.Body.String())
	}
}

// readyz должен передавать в Ping контекст с дедлайном.
func TestReadyz_PingGetsDeadline(t *testing.T) {
	var hadDeadline bool
	r := newTestRouter(t, func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !hadDeadline {
		t.Fatal("Ping must receive a context with deadline")
	}
}

func TestMetrics_200(t *testing.T) {
	r := newTestRouter(t, func(context.Context) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	// Содержимое может меняться — достаточно проверить, что не пусто.
	if w.Body.Len() == 0 {
		t.Fatal("metrics body is empty")
	}
}

func TestNoRoute_404(t *testing.T) {
	r := newTestRouter(t, func(context.Context) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}
