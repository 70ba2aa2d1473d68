// Пакет heartbeat — самостоятельный liveness-сигнал воркера.
// Репортер живёт отдельно от цикла обработки и не делит с ним никакого
// изменяемого состояния: единственная общая точка — момент старта процесса,
// который захватывается один раз и дальше только читается.
package heartbeat

import (
	"context"
	"time"

	"github.com/Gunvolt24/jobs_ingest/internal/ports"
	"github.com/Gunvolt24/jobs_ingest/pkg/metrics"
	"github.com/robfig/cron/v3"
)

// Reporter — периодический отчёт "воркер жив" с аптаймом процесса.
type Reporter struct {
	log       ports.Logger
	interval  time.Duration
	startedAt time.Time
	cron      *cron.Cron
}

// NewReporter — конструктор. startedAt фиксируется здесь и не меняется.
func NewReporter(log ports.Logger, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Reporter{
		log:       log,
		interval:  interval,
		startedAt: time.Now(),
		cron:      cron.New(),
	}
}

// Start — запускает расписание; сам вызов не блокирует.
func (r *Reporter) Start() {
	r.cron.Schedule(cron.Every(r.interval), cron.FuncJob(r.report))
	r.cron.Start()
}

// Stop — останавливает расписание; уже запущенный тик дорабатывает.
func (r *Reporter) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// Uptime — время жизни процесса от старта репортера.
func (r *Reporter) Uptime() time.Duration { return time.Since(r.startedAt) }

func (r *Reporter) report() {
	uptime := r.Uptime()
	metrics.WorkerUptime.Set(uptime.Seconds())
	r.log.Infof(context.Background(), "worker alive uptime=%s", uptime.Truncate(time.Second))
}
