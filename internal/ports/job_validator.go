package ports

import (
	"context"

	"github.com/Gunvolt24/jobs_ingest/internal/domain"
)

type JobValidator interface {
	Validate(ctx context.Context, job *domain.RawJob) error
}
