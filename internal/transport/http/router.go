package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Gunvolt24/jobs_ingest/internal/ports"
	"github.com/Gunvolt24/jobs_ingest/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Pinger — проверка готовности хранилища (pgxpool.Pool подходит напрямую).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler — ops-поверхность воркера: liveness, readiness, метрики.
// Бизнес-эндпоинтов у воркера нет — чтение данных живёт в других сервисах.
type Handler struct {
	store     Pinger
	log       ports.Logger
	startedAt time.Time
}

func NewHandler(store Pinger, log ports.Logger, startedAt time.Time) *Handler {
	return &Handler{store: store, log: log, startedAt: startedAt}
}

// NewRouter — gin-роутер ops-поверхности.
// otelServiceName != "" включает otelgin-middleware (трейсинг).
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/healthz", h.healthz)
	r.GET("/readyz", h.readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// healthz — процесс жив; отдаём аптайм для глаз и для проб.
func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}

// readyz — воркер готов, когда доступно хранилище.
func (h *Handler) readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warnf(c.Request.Context(), "readiness: store ping failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
