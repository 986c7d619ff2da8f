package repository

import (
	"context"

	"SignalFuse/internal/domain/models"
	domrepo "SignalFuse/internal/domain/repository"
	pkgkafka "SignalFuse/pkg/kafka"
)

// KafkaDecisionPublisher emits DecisionEvents keyed by symbol so the
// dashboard fan-out keeps per-symbol ordering.
type KafkaDecisionPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaDecisionPublisher(producer *pkgkafka.Producer, topic string) *KafkaDecisionPublisher {
	return &KafkaDecisionPublisher{producer: producer, topic: topic}
}

func (p *KafkaDecisionPublisher) PublishDecision(ctx context.Context, ev *models.DecisionEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Symbol), ev)
}

func (p *KafkaDecisionPublisher) Close() error {
	return p.producer.Close()
}

var _ domrepo.Publisher = (*KafkaDecisionPublisher)(nil)
