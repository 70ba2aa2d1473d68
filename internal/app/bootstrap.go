package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/jobs_ingest/config"
	"github.com/Gunvolt24/jobs_ingest/internal/heartbeat"
	"github.com/Gunvolt24/jobs_ingest/internal/kafka"
	"github.com/Gunvolt24/jobs_ingest/internal/ports"
	"github.com/Gunvolt24/jobs_ingest/internal/repo/postgres"
	rest "github.com/Gunvolt24/jobs_ingest/internal/transport/http"
	"github.com/Gunvolt24/jobs_ingest/internal/usecase"
	"github.com/Gunvolt24/jobs_ingest/pkg/logger"
	"github.com/Gunvolt24/jobs_ingest/pkg/metrics"
	"github.com/Gunvolt24/jobs_ingest/pkg/telemetry"
	"github.com/Gunvolt24/jobs_ingest/pkg/validate"
	"github.com/gin-gonic/gin"
)

// App — собранный воркер и его внешние интерфейсы (consumer, ops HTTP, heartbeat).
type App struct {
	Logger          ports.Logger          // логгер
	OpsServer       *http.Server          // ops HTTP-сервер (healthz/readyz/metrics)
	KafkaConsumer   ports.MessageConsumer // консьюмер сообщений
	Heartbeat       *heartbeat.Reporter   // liveness-репортер
	gracefulTimeout time.Duration         // время ожидания завершения ops-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
// Ошибка здесь фатальна: без пула и брокера воркер не имеет права молча
// продолжать в деградированном состоянии.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Пул подключений Postgres + стартовая проверка доступности.
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN(), cfg.Postgres.MinConns, cfg.Postgres.MaxConns)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, fmt.Errorf("postgres ping: %w", err)
	}
	logg.Infof(ctx, "postgres connected host=%s db=%s pool=[%d..%d]",
		cfg.Postgres.Host, cfg.Postgres.Name, cfg.Postgres.MinConns, cfg.Postgres.MaxConns)

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Сборка зависимостей доменного слоя.
	jobRepo := postgres.NewJobRepository(pool)
	jobValidator := validate.NewJobValidator()
	ingestService := usecase.NewIngestService(jobRepo, logg, jobValidator)

	// Liveness-репортер: единственное общее с циклом — момент старта (read-only).
	reporter := heartbeat.NewReporter(logg, cfg.Heartbeat.Interval)

	// Режим Gin и ops-сервер.
	applyGinMode(ctx, cfg.Ops.GinMode, logg)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	opsHandler := rest.NewHandler(pool, logg, time.Now())
	router := rest.NewRouter(opsHandler, otelServiceName)

	opsSrv := &http.Server{
		Addr:              cfg.Ops.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Конфигурация и создание консьюмера Kafka.
	kafkaCfg := kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.Topic,
		StartOffset:    cfg.Kafka.StartOffset,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
		FailureBackoff: cfg.Kafka.FailureBackoff,
	}
	consumer := kafka.NewConsumer(&kafkaCfg, ingestService, logg)

	app := &App{
		Logger:          logg,
		OpsServer:       opsSrv,
		KafkaConsumer:   consumer,
		Heartbeat:       reporter,
		gracefulTimeout: cfg.Ops.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if err := consumer.Close(); err != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", err)
		}

		pool.Close()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает консьюмера, heartbeat и ops-сервер; ждёт отмены контекста
// или фоновой ошибки и останавливает всё в правильном порядке.
// Сообщение в обработке дорабатывает до своего исхода (коммит или нет).
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск консьюмера.
	go func() {
		a.Logger.Infof(ctx, "kafka consumer starting")
		if err := a.KafkaConsumer.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// Liveness-репортер (не блокирует).
	a.Heartbeat.Start()

	// Запуск ops HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "ops server starting (addr=%s)", a.OpsServer.Addr)
		if err := a.OpsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка ops-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.OpsServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "ops server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "ops server stopped gracefully")
	}

	// Остановка heartbeat и Kafka-консьюмера.
	a.Heartbeat.Stop()
	if err := a.KafkaConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
	}

	a.Logger.Infof(ctx, "worker stopped")
	return nil
}
