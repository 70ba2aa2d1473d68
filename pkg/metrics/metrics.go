package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_skipped_total",
			Help: "Number of malformed/invalid messages skipped with offset commit",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process (offset not committed)",
		},
		[]string{"topic"},
	)
)

var (
	JobsIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobs_ingested_total",
			Help: "Number of new jobs created by ingest_and_match",
		},
	)
	JobsDuplicate = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobs_duplicate_total",
			Help: "Number of jobs reported as duplicates by ingest_and_match",
		},
	)
	WorkerUptime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_uptime_seconds",
			Help: "Seconds since worker start, updated by the liveness reporter",
		},
	)
)

func MustRegister() {
	prometheus.MustRegister(
		KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesSkipped, KafkaMessagesFailed,
		JobsIngested, JobsDuplicate, WorkerUptime,
	)
}
