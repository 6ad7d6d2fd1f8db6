// Package kafka provides an Apache Kafka backend for wireup.
package kafka

import (
	"context"
	"crypto/tls"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/wireup/mapper"
	"github.com/drblury/wireup/properties"
	"github.com/drblury/wireup/transport"
)

// BackendName is the name used to register this backend.
const BackendName = "kafka"

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(cfg kafka.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return kafka.NewPublisher(cfg, logger)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(cfg kafka.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return kafka.NewSubscriber(cfg, logger)
}

func init() {
	transport.RegisterWithCapabilities(BackendName, Build, transport.KafkaCapabilities)
}

// Build creates a new Kafka transport. The mapped sarama config carries the
// producer batching, compression, and TLS settings from the properties.
func Build(ctx context.Context, props *properties.Messaging, tlsConfig *tls.Config, logger watermill.LoggerAdapter) (transport.Transport, error) {
	saramaConfig := mapper.SaramaConfig(props, tlsConfig)

	publisher, err := PublisherFactory(
		kafka.PublisherConfig{
			Brokers:               props.Kafka.Brokers,
			Marshaler:             kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaConfig,
		},
		logger,
	)
	if err != nil {
		return transport.Transport{}, err
	}

	subscriber, err := SubscriberFactory(
		kafka.SubscriberConfig{
			Brokers:               props.Kafka.Brokers,
			Unmarshaler:           kafka.DefaultMarshaler{},
			ConsumerGroup:         props.Kafka.ConsumerGroup,
			OverwriteSaramaConfig: saramaConfig,
		},
		logger,
	)
	if err != nil {
		return transport.Transport{}, err
	}

	return transport.Transport{
		Publisher:  publisher,
		Subscriber: subscriber,
	}, nil
}

// Capabilities returns the capabilities of this backend.
func Capabilities() transport.Capabilities {
	return transport.KafkaCapabilities
}
