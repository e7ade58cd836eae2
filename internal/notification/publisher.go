package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher emits notification facts.
type Publisher interface {
	Publish(ctx context.Context, fact Fact) error
}

// KafkaPublisher writes facts as JSON messages keyed by subject.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	// Async: WriteMessages only enqueues. Delivery failures arrive in Completion.
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		MaxAttempts:  3,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("notification delivery failed",
					zap.String("topic", topic),
					zap.Int("messages", len(messages)),
					zap.Error(err),
				)
			}
		},
	}
	logger.Info("kafka publisher ready", zap.Strings("brokers", brokers), zap.String("topic", topic))
	return &KafkaPublisher{writer: w, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, fact Fact) error {
	if fact.OccurredAt.IsZero() {
		fact.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(fact)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fact.Subject),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(fact.Kind)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher only logs facts. Used when no brokers are configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, fact Fact) error {
	p.logger.Info("notification emitted",
		zap.String("kind", string(fact.Kind)),
		zap.String("subject", fact.Subject),
		zap.String("recipient", fact.Recipient),
		zap.String("message", fact.Message),
	)
	return nil
}

// MemoryPublisher keeps facts in memory.
type MemoryPublisher struct {
	mu    sync.Mutex
	facts []Fact
}

func (p *MemoryPublisher) Publish(_ context.Context, fact Fact) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.facts = append(p.facts, fact)
	return nil
}

func (p *MemoryPublisher) Facts() []Fact {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Fact, len(p.facts))
	copy(out, p.facts)
	return out
}

// Emit publishes fact and logs instead of failing when the publisher errors.
// Delivery is best effort and never blocks the action that produced it.
func Emit(ctx context.Context, p Publisher, logger *zap.Logger, fact Fact) {
	if p == nil {
		return
	}
	if fact.OccurredAt.IsZero() {
		fact.OccurredAt = time.Now().UTC()
	}
	if err := p.Publish(ctx, fact); err != nil {
		logger.Warn("notification not emitted",
			zap.String("kind", string(fact.Kind)),
			zap.String("subject", fact.Subject),
			zap.Error(err),
		)
	}
}
