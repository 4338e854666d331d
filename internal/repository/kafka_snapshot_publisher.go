package repository

import (
	"context"

	"FXLens/internal/domain/models"
	pkgkafka "FXLens/pkg/kafka"
)

// KafkaSnapshotPublisher pushes completed snapshots to a Kafka topic,
// keyed by fetch timestamp for per-cycle ordering.
type KafkaSnapshotPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSnapshotPublisher creates a Kafka snapshot publisher.
func NewKafkaSnapshotPublisher(producer *pkgkafka.Producer, topic string) *KafkaSnapshotPublisher {
	return &KafkaSnapshotPublisher{producer: producer, topic: topic}
}

func (p *KafkaSnapshotPublisher) PublishSnapshot(ctx context.Context, snap *models.Snapshot) error {
	key := []byte(snap.FetchedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	return p.producer.Publish(ctx, p.topic, key, snap)
}

func (p *KafkaSnapshotPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
