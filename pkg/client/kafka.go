package client

import (
	"slotlink/pkg/kafka"
	kafka_config "slotlink/pkg/kafka/config"
	kafka_middleware "slotlink/pkg/kafka/middleware"
	"slotlink/pkg/logger"
)

func (c *Client) SetKafka(log *logger.Logger, cfg *kafka_config.Config) {
	producer, err := kafka.NewProducer(cfg, log)
	if err != nil {
		log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(log))
	}
	log.Info("Kafka producer ready", "topic", cfg.Topic, "brokers", cfg.Brokers)
	c.Kafka = producer
}
