package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type ConsumerConfig struct {
	Brokers        []string
	Topic          string
	GroupID        string
	StartOffset    string
	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
	FailureBackoff time.Duration
}

func (c *ConsumerConfig) readerConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers: c.Brokers,
		GroupID: c.GroupID,
		Topic:   c.Topic,
		// CommitInterval=0 — только ручные коммиты после успешной обработки.
		CommitInterval: 0,
	}

	// Для новой группы стартуем с самого раннего оффсета, чтобы не терять
	// сообщения, опубликованные до первого запуска воркера.
	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "last":
		rc.StartOffset = kafka.LastOffset
	default:
		rc.StartOffset = kafka.FirstOffset
	}

	return rc
}
