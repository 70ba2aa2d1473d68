package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gunvolt24/jobs_ingest/internal/domain"
	"github.com/Gunvolt24/jobs_ingest/internal/ports"
	"github.com/Gunvolt24/jobs_ingest/pkg/metrics"
	"github.com/Gunvolt24/jobs_ingest/pkg/normalize"
	"github.com/Gunvolt24/jobs_ingest/pkg/validate"
)

// IngestService — прикладная логика обработки одного сообщения о вакансии
// (без знаний о транспорте).
type IngestService struct {
	repo      ports.JobIngestor // шлюз к ingest_and_match
	log       ports.Logger      // логгер
	validator ports.JobValidator // структурная валидация
}

// NewIngestService — DI-конструктор.
func NewIngestService(
	repo ports.JobIngestor,
	log ports.Logger,
	validator ports.JobValidator,
) *IngestService {
	return &IngestService{
		repo:      repo,
		log:       log,
		validator: validator,
	}
}

// SaveFromMessage — обработать сообщение из Kafka (raw JSON).
// Шаги:
//  1. декодирование JSON (нестрогое — лишние поля от скраперов допускаются);
//  2. структурная валидация (вернёт обёртку validate.ErrInvalidJob — пропуск);
//  3. нормализация локации (чистая функция, не падает);
//  4. атомарный вызов ingest_and_match; 0 — это дубликат, не ошибка.
//
// Ошибка без validate.ErrInvalidJob в цепочке означает временный сбой:
// консьюмер не коммитит оффсет, повтор придёт передоставкой из брокера.
func (s *IngestService) SaveFromMessage(ctx context.Context, raw []byte) error {
	var rawJob domain.RawJob
	if err := json.Unmarshal(raw, &rawJob); err != nil {
		s.log.Warnf(ctx, "malformed message err=%v", err)
		return fmt.Errorf("%w: %v", validate.ErrMalformedMessage, err)
	}

	// Структурная валидация (обязательные поля id, title, company, url).
	if err := s.validator.Validate(ctx, &rawJob); err != nil {
		s.log.Warnf(ctx, "validation failed external_id=%s err=%v", rawJob.ID, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	job := domain.Job{
		RawJob:             rawJob,
		NormalizedLocation: normalize.Location(rawJob.Location),
	}

	// Атомарная операция во внешнем хранилище (dedup + match + alerts).
	jobID, err := s.repo.Ingest(ctx, &job)
	if err != nil {
		s.log.Errorf(ctx, "repo.Ingest failed external_id=%s err=%v", job.ID, err)
		return fmt.Errorf("failed to ingest job: %w", err)
	}

	if jobID > 0 {
		metrics.JobsIngested.Inc()
		s.log.Infof(ctx, "job ingested id=%d external_id=%s location=%q", jobID, job.ID, job.NormalizedLocation)
		return nil
	}

	// 0 — external_id уже был загружен: ожидаемый no-op, просто фиксируем.
	metrics.JobsDuplicate.Inc()
	s.log.Infof(ctx, "duplicate job external_id=%s (skipped by store)", job.ID)
	return nil
}
