package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/jobs_ingest/internal/domain"
	"github.com/Gunvolt24/jobs_ingest/internal/ports"
)

// Проверка, что JobValidator удовлетворяет интерфейсу JobValidator.
var _ ports.JobValidator = (*JobValidator)(nil)

// ErrInvalidJob — базовая (sentinel error) ошибка классификации сообщения.
// Всё, что оборачивает её, консьюмер пропускает с коммитом оффсета:
// повторная доставка такие сообщения не исправит.
var ErrInvalidJob = errors.New("job validation failed")

var (
	// ErrMalformedMessage — payload не декодируется как структурированные данные.
	ErrMalformedMessage = fmt.Errorf("%w: malformed message", ErrInvalidJob)
	// ErrMissingField — обязательное поле отсутствует или пустое.
	ErrMissingField = fmt.Errorf("%w: missing required field", ErrInvalidJob)
)

// JobValidator — структурная валидация сообщения о вакансии.
type JobValidator struct{}

// NewJobValidator — конструктор JobValidator.
func NewJobValidator() *JobValidator { return &JobValidator{} }

// Validate — проверяет наличие обязательных полей {id, title, company, url}.
// location — опциональное поле, его отсутствие не ошибка.
func (v *JobValidator) Validate(_ context.Context, job *domain.RawJob) error {
	if job == nil {
		return fmt.Errorf("%w: job не может быть nil", ErrMalformedMessage)
	}
	if strings.TrimSpace(job.ID.String()) == "" {
		return fmt.Errorf("%w: id", ErrMissingField)
	}
	if strings.TrimSpace(job.Title) == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if strings.TrimSpace(job.Company) == "" {
		return fmt.Errorf("%w: company", ErrMissingField)
	}
	if strings.TrimSpace(job.URL) == "" {
		return fmt.Errorf("%w: url", ErrMissingField)
	}
	return nil
}
