//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/Gunvolt24/jobs_ingest/internal/domain"
	"github.com/Gunvolt24/jobs_ingest/pkg/normalize"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// Мини-генератор валидной вакансии
func MakeJob(opts ...func(*domain.Job)) domain.Job {
	id := "job-" + UniqSuffix()

	j := domain.Job{
		RawJob: domain.RawJob{
			ID:       domain.ExternalID(id),
			Title:    "Go Developer",
			Company:  "acme-" + UniqSuffix(),
			URL:      fmt.Sprintf("https://example.com/jobs/%s", id),
			Location: "Austin, TX",
		},
	}

	for _, fn := range opts {
		fn(&j)
	}
	j.NormalizedLocation = normalize.Location(j.Location)
	return j
}

// Опции для переопределения полей в тестах

func WithExternalID(id string) func(*domain.Job) {
	return func(j *domain.Job) { j.ID = domain.ExternalID(id) }
}

func WithLocation(loc string) func(*domain.Job) {
	return func(j *domain.Job) { j.Location = loc }
}

func WithTitle(title string) func(*domain.Job) {
	return func(j *domain.Job) { j.Title = title }
}
