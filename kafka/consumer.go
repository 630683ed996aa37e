package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rlindsey28/chat-dice/chat"
	"github.com/rlindsey28/chat-dice/config"
	"github.com/rlindsey28/chat-dice/logger"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.25.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// HandleFunc receives every broadcast a Feed consumes.
type HandleFunc func(ctx context.Context, b chat.Broadcast) error

// Feed is a consumer group handler that follows room broadcasts. When room
// is set, broadcasts to other rooms are skipped.
type Feed struct {
	ready  chan bool
	room   string
	handle HandleFunc
}

func NewFeed(room string, handle HandleFunc) *Feed {
	return &Feed{
		ready:  make(chan bool),
		room:   room,
		handle: handle,
	}
}

// Run consumes the configured topics until ctx is cancelled.
func (f *Feed) Run(ctx context.Context, conf config.KafkaConfig) error {
	log := logger.Get()
	log.Info("Starting a new Sarama consumer", zap.String("group", conf.ConsumerGroup))

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = ProtocolVersion
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest

	client, err := sarama.NewConsumerGroup(conf.Brokers, conf.ConsumerGroup, saramaConfig)
	if err != nil {
		return fmt.Errorf("create consumer group client: %w", err)
	}

	ready := f.ready
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		for {
			// `Consume` should be called inside an infinite loop, when a
			// server-side rebalance happens, the consumer session will need to be
			// recreated to get the new claims
			if err := client.Consume(ctx, strings.Split(conf.Topic, ","), f); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				errs <- fmt.Errorf("consume: %w", err)
				return
			}
			// check if context was cancelled, signaling that the consumer should stop
			if ctx.Err() != nil {
				return
			}
			f.ready = make(chan bool)
		}
	}()

	select {
	case <-ready:
		log.Info("Sarama consumer up and running!...")
	case err := <-errs:
		return errors.Join(err, client.Close())
	case <-ctx.Done():
	}

	err = <-errs
	return errors.Join(err, client.Close())
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (f *Feed) Setup(sarama.ConsumerGroupSession) error {
	// Mark the consumer as ready
	close(f.ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (f *Feed) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages().
// Once the Messages() channel is closed, the Handler must finish its processing
// loop and exit.
func (f *Feed) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log := logger.Get()
	// NOTE:
	// Do not move the code below to a goroutine.
	// The `ConsumeClaim` itself is called within a goroutine, see:
	// https://github.com/IBM/sarama/blob/main/consumer_group.go#L27-L29
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				log.Info("message channel was closed")
				return nil
			}
			if err := f.consume(session.Context(), message); err != nil {
				return err
			}
			session.MarkMessage(message, "")
		// Should return when `session.Context()` is done.
		// If not, will raise `ErrRebalanceInProgress` or `read tcp <ip>:<port>: i/o timeout` when kafka rebalance. see:
		// https://github.com/IBM/sarama/issues/1192
		case <-session.Context().Done():
			return nil
		}
	}
}

func (f *Feed) consume(ctx context.Context, message *sarama.ConsumerMessage) error {
	log := logger.FromCtx(ctx)

	carrier := propagation.MapCarrier{}
	for _, h := range message.Headers {
		carrier[string(h.Key)] = string(h.Value)
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)
	ctx, span := tracer.Start(ctx, fmt.Sprintf("%s receive", message.Topic),
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingDestinationName(message.Topic),
			semconv.MessagingKafkaDestinationPartition(int(message.Partition)),
			semconv.MessagingKafkaMessageOffset(int(message.Offset)),
		),
	)
	defer span.End()

	var b chat.Broadcast
	if err := json.Unmarshal(message.Value, &b); err != nil {
		// A record we cannot read will never become readable; skip it.
		log.Warn("Error unmarshalling broadcast", zap.Int64("offset", message.Offset), zap.Error(err))
		span.RecordError(err)
		return nil
	}
	if f.room != "" && b.Room != f.room {
		return nil
	}
	return f.handle(ctx, b)
}
