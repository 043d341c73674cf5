package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// PredictionConsumer reads JSON-encoded entities.Prediction messages off a
// Kafka topic, adapted from the teacher's Kafka consumer wrapper.
type PredictionConsumer struct {
	reader *kafkago.Reader
}

// NewPredictionConsumer builds a consumer bound to a single topic/group.
func NewPredictionConsumer(brokers []string, topic, groupID string) *PredictionConsumer {
	return &PredictionConsumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        brokers,
			Topic:          topic,
			GroupID:        groupID,
			StartOffset:    kafkago.FirstOffset,
			CommitInterval: time.Second,
		}),
	}
}

// Next blocks for the next prediction message, decoding its JSON body.
func (c *PredictionConsumer) Next(ctx context.Context) (entities.Prediction, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return entities.Prediction{}, fmt.Errorf("read prediction message: %w", err)
	}
	var pred entities.Prediction
	if err := json.Unmarshal(msg.Value, &pred); err != nil {
		return entities.Prediction{}, fmt.Errorf("decode prediction message: %w", err)
	}
	return pred, nil
}

// Close closes the underlying reader.
func (c *PredictionConsumer) Close() error { return c.reader.Close() }

// ResultProducer publishes JSON-encoded entities.AlignmentResult messages to
// an output topic, adapted from the teacher's Kafka producer wrapper.
type ResultProducer struct {
	writer *kafkago.Writer
	topic  string
}

// NewResultProducer builds a producer bound to a single output topic.
func NewResultProducer(brokers []string, topic string) *ResultProducer {
	return &ResultProducer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Balancer:     &kafkago.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafkago.RequireOne,
			MaxAttempts:  3,
		},
		topic: topic,
	}
}

// Publish writes a single alignment result, keyed by its FDC id, to the
// output topic.
func (p *ResultProducer) Publish(ctx context.Context, result *entities.AlignmentResult) error {
	value, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal alignment result: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: p.topic,
		Key:   []byte(fmt.Sprintf("%d", result.FDCID)),
		Value: value,
	})
}

// Close closes the underlying writer.
func (p *ResultProducer) Close() error { return p.writer.Close() }
