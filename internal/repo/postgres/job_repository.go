package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/jobs_ingest/internal/domain"
	"github.com/Gunvolt24/jobs_ingest/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что JobRepository удовлетворяет интерфейсу JobIngestor.
var _ ports.JobIngestor = (*JobRepository)(nil)

// JobRepository — шлюз к атомарной функции ingest_and_match (pgxpool).
// Дедупликация, сохранение и матчинг алертов выполняются внутри самой функции;
// задача репозитория — корректно вызвать её и управлять жизненным циклом
// транзакции. Соединение возвращается в пул на любом пути выхода.
type JobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository - конструктор JobRepository.
func NewJobRepository(pool *pgxpool.Pool) *JobRepository { return &JobRepository{pool: pool} }

// Ingest — вызывает ingest_and_match(company_id, external_id, title, location, url)
// в явной транзакции. Возвращает id новой записи или 0 для дубликата.
// Интерпретация результата дальше различения "новый/дубликат" не делается.
func (r *JobRepository) Ingest(ctx context.Context, job *domain.Job) (int64, error) {
	if job == nil || job.ID == "" {
		return 0, errors.New("job is empty or external id is required")
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	var jobID int64
	if err := transaction.QueryRow(ctx, `
		SELECT ingest_and_match($1, $2, $3, $4, $5)
	`, job.Company, job.ID.String(), job.Title, job.NormalizedLocation, job.URL).Scan(&jobID); err != nil {
		return 0, fmt.Errorf("ingest_and_match: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return jobID, nil
}
