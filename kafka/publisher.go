package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rlindsey28/chat-dice/chat"
	"github.com/rlindsey28/chat-dice/logger"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.25.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const name = "kafka"

var (
	tracer = otel.Tracer(name)
)

// Publisher delivers room broadcasts to a Kafka topic, keyed by room.
type Publisher struct {
	topicName string
	producer  sarama.SyncProducer
}

var _ chat.Sink = (*Publisher)(nil)

func NewPublisher(topicName string, producer sarama.SyncProducer) *Publisher {
	return &Publisher{
		topicName: topicName,
		producer:  producer,
	}
}

func (p *Publisher) Broadcast(ctx context.Context, b chat.Broadcast) error {
	log := logger.FromCtx(ctx)

	value, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode broadcast: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topicName,
		Key:   sarama.StringEncoder(b.Room),
		Value: sarama.ByteEncoder(value),
	}

	// Inject tracing info into message
	span := createProducerSpan(ctx, msg)
	defer span.End()

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		log.Error("failed to publish broadcast to kafka", zap.Error(err))
		span.SetStatus(otelcodes.Error, err.Error())
		span.RecordError(err)
		return fmt.Errorf("publish broadcast: %w", err)
	}

	span.SetAttributes(
		semconv.MessagingKafkaDestinationPartition(int(partition)),
		semconv.MessagingKafkaMessageOffset(int(offset)),
	)
	log.Debug("published broadcast", zap.String("topic", p.topicName), zap.Int32("partition", partition), zap.Int64("offset", offset))
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

func createProducerSpan(ctx context.Context, msg *sarama.ProducerMessage) trace.Span {
	spanContext, span := tracer.Start(
		ctx,
		fmt.Sprintf("%s publish", msg.Topic),
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.PeerService("kafka"),
			semconv.NetworkTransportTCP,
			semconv.MessagingSystemKafka,
			semconv.MessagingDestinationName(msg.Topic),
			semconv.MessagingOperationPublish,
		),
	)

	carrier := propagation.MapCarrier{}
	propagator := otel.GetTextMapPropagator()
	propagator.Inject(spanContext, carrier)

	for key, value := range carrier {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
	}

	return span
}
