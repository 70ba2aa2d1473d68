package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

// Ops — HTTP-поверхность воркера: healthz/readyz/metrics.
type Ops struct {
	Addr            string        `default:":8080" envconfig:"ADDR"`
	GinMode         string        `default:"debug" envconfig:"GIN_MODE"`
	GracefulTimeout time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"jobs-ingest" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

// Postgres — параметры подключения и границы пула.
type Postgres struct {
	Host     string `default:"localhost" envconfig:"HOST"`
	Port     int    `default:"5432" envconfig:"PORT"`
	Name     string `default:"postgres" envconfig:"NAME"`
	User     string `default:"postgres" envconfig:"USER"`
	Password string `default:"postgres" envconfig:"PASSWORD"`
	SSLMode  string `default:"require" envconfig:"SSL_MODE"`
	MinConns int32  `default:"2" envconfig:"MIN_CONNS"`
	MaxConns int32  `default:"10" envconfig:"MAX_CONNS"`
}

// DSN — собирает строку подключения; пароль экранируется.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.Name,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}

type Kafka struct {
	Brokers []string `default:"localhost:9092" envconfig:"BROKERS"`
	Topic   string   `default:"raw_jobs_queue" envconfig:"TOPIC"`
	GroupID string   `default:"job_ingestion_group_v1" envconfig:"GROUP_ID"`
	// first — для новой группы начинаем с самого раннего оффсета.
	StartOffset    string        `default:"first" envconfig:"START_OFFSET"`
	ProcessTimeout time.Duration `default:"5s" envconfig:"PROCESS_TIMEOUT"`
	RetryInitial   time.Duration `default:"1s" envconfig:"RETRY_INITIAL"`
	RetryMax       time.Duration `default:"30s" envconfig:"RETRY_MAX"`
	// FailureBackoff — фиксированная пауза после неуспешной обработки сообщения.
	FailureBackoff time.Duration `default:"1s" envconfig:"FAILURE_BACKOFF"`
}

type Heartbeat struct {
	Interval time.Duration `default:"30s" envconfig:"INTERVAL"`
}

type Config struct {
	Logger    Logger
	Ops       Ops
	Tracing   Tracing
	Postgres  Postgres
	Kafka     Kafka
	Heartbeat Heartbeat
}

// Load — конфигурация процесса из окружения с префиксом INGEST.
func Load() (Config, error) { return LoadWithPrefix("INGEST") }

// LoadWithPrefix — то же с произвольным префиксом (удобно в тестах).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	return c, nil
}
