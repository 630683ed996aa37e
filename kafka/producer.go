package kafka

import (
	"github.com/rlindsey28/chat-dice/config"
	"github.com/rlindsey28/chat-dice/logger"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

var (
	ProtocolVersion = sarama.V3_6_0_0
)

// NewProducer returns a synchronous producer for the configured brokers.
// Records are partitioned by key, so every broadcast of a room keeps its
// order.
func NewProducer(conf config.KafkaConfig) (sarama.SyncProducer, error) {
	log := logger.Get()

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = ProtocolVersion
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(conf.Brokers, saramaConfig)
	if err != nil {
		log.Error("failed to create producer", zap.Error(err))
		return nil, err
	}
	return producer, nil
}
