//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	pgrepo "github.com/Gunvolt24/jobs_ingest/internal/repo/postgres"
	"github.com/Gunvolt24/jobs_ingest/internal/testutil"
)

// 1) Первый Ingest создаёт запись и возвращает её id
func TestRepo_Ingest_New_TC(t *testing.T) {
	t.Parallel()

	// длинный контекст — только на подъём контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()

	// миграции
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	// короткий контекст — на сами БД-операции
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewJobRepository(pool)

	job := testutil.MakeJob() // генерит валидную уникальную вакансию
	id, err := repo.Ingest(ctx, &job)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	// запись реально в таблице, локация — в нормализованном виде
	var storedLocation string
	err = pool.QueryRow(ctx,
		`SELECT location FROM jobs WHERE external_id = $1`, job.ID.String()).Scan(&storedLocation)
	require.NoError(t, err)
	require.Equal(t, "austin texas", storedLocation)
}

// 2) Повторный Ingest того же external_id — идемпотентный no-op (возвращает 0)
func TestRepo_Ingest_Duplicate_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewJobRepository(pool)

	job := testutil.MakeJob()

	first, err := repo.Ingest(ctx, &job)
	require.NoError(t, err)
	require.Greater(t, first, int64(0))

	// передоставка того же сообщения — запись уже есть
	second, err := repo.Ingest(ctx, &job)
	require.NoError(t, err)
	require.Equal(t, int64(0), second)

	// в таблице ровно одна строка с этим external_id
	var count int
	err = pool.QueryRow(ctx,
		`SELECT count(*) FROM jobs WHERE external_id = $1`, job.ID.String()).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// 3) Матчинг: подписка с совпадающими keyword/location получает алерт,
// несовпадающая — нет; дубликат не плодит повторных алертов
func TestRepo_Ingest_MatchCreatesAlerts_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewJobRepository(pool)

	// две подписки: первая матчится по keyword+location, вторая — нет
	var matchSearchID, missSearchID int64
	err = pool.QueryRow(ctx,
		`INSERT INTO saved_searches (user_id, keyword, location_query) VALUES ($1, $2, $3) RETURNING id`,
		"user-1", "developer", "texas").Scan(&matchSearchID)
	require.NoError(t, err)
	err = pool.QueryRow(ctx,
		`INSERT INTO saved_searches (user_id, keyword, location_query) VALUES ($1, $2, $3) RETURNING id`,
		"user-2", "designer", "alaska").Scan(&missSearchID)
	require.NoError(t, err)

	job := testutil.MakeJob(testutil.WithTitle("Senior Go Developer"), testutil.WithLocation("Austin, TX"))

	jobID, err := repo.Ingest(ctx, &job)
	require.NoError(t, err)
	require.Greater(t, jobID, int64(0))

	// алерт только для совпавшей подписки
	var alerts int
	err = pool.QueryRow(ctx,
		`SELECT count(*) FROM job_alerts WHERE job_id = $1`, jobID).Scan(&alerts)
	require.NoError(t, err)
	require.Equal(t, 1, alerts)

	var gotSearchID int64
	err = pool.QueryRow(ctx,
		`SELECT search_id FROM job_alerts WHERE job_id = $1`, jobID).Scan(&gotSearchID)
	require.NoError(t, err)
	require.Equal(t, matchSearchID, gotSearchID)

	// передоставка: алерты не дублируются
	dup, err := repo.Ingest(ctx, &job)
	require.NoError(t, err)
	require.Equal(t, int64(0), dup)

	err = pool.QueryRow(ctx,
		`SELECT count(*) FROM job_alerts WHERE job_id = $1`, jobID).Scan(&alerts)
	require.NoError(t, err)
	require.Equal(t, 1, alerts)
}

// 4) Ingest — ошибки на пустых обязательных полях уровня БД (NOT NULL)
func TestRepo_Ingest_NilJob_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewJobRepository(pool)
	_, err = repo.Ingest(ctx, nil)
	require.Error(t, err)
}
