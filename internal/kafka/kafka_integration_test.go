//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	ikafka "github.com/Gunvolt24/jobs_ingest/internal/kafka"
	"github.com/Gunvolt24/jobs_ingest/internal/ports"
	pgrepo "github.com/Gunvolt24/jobs_ingest/internal/repo/postgres"
	"github.com/Gunvolt24/jobs_ingest/internal/testutil"
	"github.com/Gunvolt24/jobs_ingest/internal/usecase"
	"github.com/Gunvolt24/jobs_ingest/pkg/logger"
	"github.com/Gunvolt24/jobs_ingest/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

// jobRow — сколько строк с данным external_id лежит в jobs.
func jobRow(t *testing.T, ctx context.Context, pool *pgxpool.Pool, externalID string) int {
	t.Helper()
	var count int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM jobs WHERE external_id = $1`, externalID).Scan(&count))
	return count
}

// 1) Валидное сообщение доезжает до Postgres
func TestKafka_Valid_Ingested_TC(t *testing.T) {
	ctx, cancel, pool, repo, logg, cleanup, kf, _ := newStack(t)
	defer cancel()
	defer cleanup()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	svc := usecase.NewIngestService(repo, logg, validate.NewJobValidator())
	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 5 * time.Second,
		RetryInitial:   200 * time.Millisecond,
		RetryMax:       2 * time.Second,
		FailureBackoff: 200 * time.Millisecond,
	}, svc, logg)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() { _ = consumer.Run(runCtx) }()

	// даём консьюмеру присоединиться к группе/получить assignment
	time.Sleep(1500 * time.Millisecond)

	job := testutil.MakeJob()
	raw, _ := json.Marshal(job.RawJob)
	writeMsg(t, ctx, kf.Brokers, topic, raw)

	// ждём появления в БД
	deadline := time.Now().Add(20 * time.Second)
	for {
		if jobRow(t, ctx, pool, job.ID.String()) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job %s not ingested in time", job.ID)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// 2) Не-JSON сообщение пропускается, валидное после него — сохраняется
func TestKafka_Skip_InvalidJSON_Then_IngestValid_TC(t *testing.T) {
	ctx, cancel, pool, repo, logg, cleanup, kf, _ := newStack(t)
	defer cancel()
	defer cleanup()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-invalid-json-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	svc := usecase.NewIngestService(repo, logg, validate.NewJobValidator())
	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 3 * time.Second,
		RetryInitial:   200 * time.Millisecond,
		RetryMax:       2 * time.Second,
		FailureBackoff: 200 * time.Millisecond,
	}, svc, logg)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() { _ = consumer.Run(runCtx) }()

	time.Sleep(1500 * time.Millisecond)

	// 1) Шлём мусор
	writeMsg(t, ctx, kf.Brokers, topic, []byte("not-a-json"))

	// 2) Шлём вакансию без обязательного title — тоже должна быть пропущена
	noTitle := testutil.MakeJob(testutil.WithTitle(""))
	ntRaw, _ := json.Marshal(noTitle.RawJob)
	writeMsg(t, ctx, kf.Brokers, topic, ntRaw)

	// 3) Следом валидную
	job := testutil.MakeJob()
	raw, _ := json.Marshal(job.RawJob)
	writeMsg(t, ctx, kf.Brokers, topic, raw)

	// 4) Валидная должна доехать; пропущенные — нет
	deadline := time.Now().Add(20 * time.Second)
	for {
		if jobRow(t, ctx, pool, job.ID.String()) == 1 {
			require.Equal(t, 0, jobRow(t, ctx, pool, noTitle.ID.String()))
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job %s not ingested in time", job.ID)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// 3) At-least-once через рестарт: при временной ошибке и отсутствии коммита — передоставка
func TestKafka_Redelivery_AfterRestart_NoCommit_TC(t *testing.T) {
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "jobs-itc")
	require.NoError(t, err)
	defer func() { _ = stopKF(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	logg, closer, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = closer() }()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-redelivery-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	job := testutil.MakeJob()
	raw, _ := json.Marshal(job.RawJob)
	writeMsg(t, ctx, kf.Brokers, topic, raw)

	// Фаза 1: всегда временная ошибка => оффсет НЕ коммитится
	consumerFail := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 300 * time.Millisecond, // короткий процесс-таймаут
		RetryInitial:   100 * time.Millisecond,
		RetryMax:       300 * time.Millisecond,
		FailureBackoff: 100 * time.Millisecond,
	}, alwaysTempFailSaver{}, logg)

	runCtx1, cancelRun1 := context.WithCancel(ctx)
	go func() { _ = consumerFail.Run(runCtx1) }()

	// Ждём немного, чтобы сообщение точно было Fetch'ed и обработка упала
	time.Sleep(2 * time.Second)
	cancelRun1() // выходим без коммита

	// Фаза 2: поднимаем PG и нормальный сервис
	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewJobRepository(pool)
	svc := usecase.NewIngestService(repo, logg, validate.NewJobValidator())

	consumerOK := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:     kf.Brokers,
		Topic:       topic,
		GroupID:     group, // та же группа — перехватываем некоммиченное
		StartOffset: "first",
	}, svc, logg)

	runCtx2, cancelRun2 := context.WithCancel(ctx)
	defer cancelRun2()
	go func() { _ = consumerOK.Run(runCtx2) }()

	// Ждём появления вакансии
	deadline := time.Now().Add(25 * time.Second)
	for {
		if jobRow(t, ctx, pool, job.ID.String()) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job %s not redelivered/ingested in time", job.ID)
		}
		time.Sleep(250 * time.Millisecond)
	}
}

// 4) Идемпотентность: дважды публикуем одну и ту же вакансию — в БД одна запись
func TestKafka_Idempotent_DuplicateMessage_TC(t *testing.T) {
	ctx, cancel, pool, repo, logg, cleanup, kf, _ := newStack(t)
	defer cancel()
	defer cleanup()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-dup-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	svc := usecase.NewIngestService(repo, logg, validate.NewJobValidator())
	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:     kf.Brokers,
		Topic:       topic,
		GroupID:     group,
		StartOffset: "first",
	}, svc, logg)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() { _ = consumer.Run(runCtx) }()
	time.Sleep(1500 * time.Millisecond)

	job := testutil.MakeJob()
	raw, _ := json.Marshal(job.RawJob)

	// Публикуем дважды подряд
	writeMsg(t, ctx, kf.Brokers, topic, raw)
	writeMsg(t, ctx, kf.Brokers, topic, raw)

	// Ждём и проверяем, что запись одна
	deadline := time.Now().Add(20 * time.Second)
	for {
		if n := jobRow(t, ctx, pool, job.ID.String()); n >= 1 {
			require.Equal(t, 1, n)
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job %s not ingested in time", job.ID)
		}
		time.Sleep(200 * time.Millisecond)
	}

	// даём время на обработку второго сообщения и перепроверяем
	time.Sleep(2 * time.Second)
	require.Equal(t, 1, jobRow(t, ctx, pool, job.ID.String()))
}

// -----------------функции-помощники-----------------

func newStack(t *testing.T) (
	ctx context.Context,
	cancel func(),
	pool *pgxpool.Pool,
	repo *pgrepo.JobRepository,
	logg ports.Logger,
	cleanup func(),
	kf *testutil.KafkaEnv,
	stopKF func(context.Context) error,
) {
	t.Helper()

	// Длинный контекст — на контейнеры
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	kf, stopKF, err = testutil.StartKafkaTC(ctxStart, "jobs-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	// Короткий контекст — сам тест
	ctx, cancel = context.WithTimeout(context.Background(), 60*time.Second)

	// Пул
	pool, err = pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)

	// Логгер (+ обёртка cleanup)
	var closer func() error
	logg, closer, err = logger.NewZapLogger(false)
	require.NoError(t, err)
	cleanup = func() { _ = closer() }

	repo = pgrepo.NewJobRepository(pool)
	return
}

func writeMsg(t *testing.T, ctx context.Context, brokers []string, topic string, payload []byte) {
	t.Helper()
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()
	require.NoError(t, w.WriteMessages(ctx, kafka.Message{Value: payload}))
}

// временная "сетеподобная" ошибка
type tempNetErr struct{}

func (tempNetErr) Error() string   { return "temporary failure" }
func (tempNetErr) Temporary() bool { return true }
func (tempNetErr) Timeout() bool   { return true } // как у net.Error

// сервис-заглушка, который всегда возвращает временную ошибку (чтобы не коммитить оффсет)
type alwaysTempFailSaver struct{}

func (alwaysTempFailSaver) SaveFromMessage(ctx context.Context, _ []byte) error {
	return tempNetErr{}
}
