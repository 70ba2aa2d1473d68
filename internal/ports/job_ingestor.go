package ports

import (
	"context"

	"github.com/Gunvolt24/jobs_ingest/internal/domain"
)

// JobIngestor — шлюз к атомарной операции ingest_and_match во внешнем хранилище.
//
// Контракт: вызов выполняет дедупликацию, сохранение и матчинг алертов одной
// транзакцией на стороне хранилища. Возвращает id новой записи (> 0) либо 0,
// если external_id уже был загружен (дубликат, ничего не создано).
//
// Предусловие всей схемы доставки: операция идемпотентна по external_id.
// Повторная доставка сообщения (at-least-once, падение между Ingest и коммитом
// оффсета) обязана проходить как обычный дубликат, а не как ошибка.
type JobIngestor interface {
	Ingest(ctx context.Context, job *domain.Job) (int64, error)
}
