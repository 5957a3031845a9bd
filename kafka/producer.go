package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"delivery-service/models"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload published for order lifecycle changes.
type OrderEvent struct {
	Event       string             `json:"event"`
	OrderID     string             `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	OldStatus   models.OrderStatus `json:"old_status,omitempty"`
	NewStatus   models.OrderStatus `json:"new_status"`
	Total       int64              `json:"total"`
	Timestamp   time.Time          `json:"timestamp"`
}

// ProducerAPI is the publishing interface the service layer depends on.
type ProducerAPI interface {
	PublishOrderEvent(ctx context.Context, evt OrderEvent) error
	Close() error
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	zap.L().Info("Kafka producer initialized",
		zap.String("topic", topic),
		zap.Strings("brokers", brokers))
	return &Producer{writer: w, topic: topic}
}

// PublishOrderEvent publishes keyed by order id so events for one order stay
// ordered within a partition.
func (p *Producer) PublishOrderEvent(ctx context.Context, evt OrderEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: data,
	})
}

func (p *Producer) Close() error {
	zap.L().Info("Closing Kafka producer", zap.String("topic", p.topic))
	return p.writer.Close()
}
