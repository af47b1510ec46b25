package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderlifecycle/internal/core/domain/model/order"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	produceTimeout        = 5 * time.Second
	produceRequestTimeout = 10 * time.Second
)

// RecordProducer is the part of *kgo.Client the notifier needs.
type RecordProducer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaNotifier publishes OrderChanged records keyed by order id, so every
// event of one order lands on the same partition in order.
type KafkaNotifier struct {
	producer RecordProducer
	topic    string
}

// NewKafkaClient connects a producer with all-ISR acknowledgements.
// Records that cannot be delivered within produceTimeout fail instead of
// being buffered until the broker comes back.
func NewKafkaClient(brokers []string, topic string) (*kgo.Client, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no seed brokers")
	}
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(produceRequestTimeout),
		kgo.RecordDeliveryTimeout(produceTimeout),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID("orderlifecycle"),
	)
}

func NewKafkaNotifier(producer RecordProducer, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic}
}

func (n *KafkaNotifier) Notify(ctx context.Context, o *order.Order, e order.Event) error {
	payload, err := NewOrderChanged(o, e).Marshal()
	if err != nil {
		return err
	}

	record := &kgo.Record{
		Topic:   n.topic,
		Key:     []byte(e.OrderID.String()),
		Value:   payload,
		Headers: append(traceHeaders(ctx), kgo.RecordHeader{Key: "event-kind", Value: []byte(e.Kind)}),
	}
	ctx, cancel := context.WithTimeout(ctx, produceTimeout)
	defer cancel()

	if err = n.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka produce to %s: %w", n.topic, err)
	}
	return nil
}

func (n *KafkaNotifier) Close() {
	n.producer.Close()
}

// traceHeaders carries the W3C trace context to consumers.
func traceHeaders(ctx context.Context) []kgo.RecordHeader {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := make([]kgo.RecordHeader, 0, len(carrier))
	for _, key := range carrier.Keys() {
		headers = append(headers, kgo.RecordHeader{Key: key, Value: []byte(carrier.Get(key))})
	}
	return headers
}
