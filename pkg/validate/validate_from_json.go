package validate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gunvolt24/jobs_ingest/internal/domain"
	"github.com/Gunvolt24/jobs_ingest/internal/ports"
)

// JobFromJSON — декодирует и валидирует одно сообщение о вакансии.
// Декодирование нестрогое: лишние поля от скраперов допускаются.
// При проблеме возвращает ошибку, обёрнутую в ErrInvalidJob.
func JobFromJSON(ctx context.Context, validator ports.JobValidator, raw []byte) (*domain.RawJob, error) {
	var job domain.RawJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	if err := validator.Validate(ctx, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
