// Package rabbitmq provides a RabbitMQ/AMQP backend for wireup.
package rabbitmq

import (
	"context"
	"crypto/tls"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/v3/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/wireup/properties"
	"github.com/drblury/wireup/transport"
)

// BackendName is the name used to register this backend.
const BackendName = "rabbitmq"

// ConnectionFactory allows overriding the connection creation for testing.
var ConnectionFactory = func(cfg amqp.ConnectionConfig, logger watermill.LoggerAdapter) (*amqp.ConnectionWrapper, error) {
	return amqp.NewConnection(cfg, logger)
}

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(cfg amqp.Config, logger watermill.LoggerAdapter, conn *amqp.ConnectionWrapper) (message.Publisher, error) {
	return amqp.NewPublisherWithConnection(cfg, logger, conn)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(cfg amqp.Config, logger watermill.LoggerAdapter, conn *amqp.ConnectionWrapper) (message.Subscriber, error) {
	return amqp.NewSubscriberWithConnection(cfg, logger, conn)
}

func init() {
	transport.RegisterWithCapabilities(BackendName, Build, transport.RabbitMQCapabilities)
}

// Build creates a new RabbitMQ transport. Durable queues are used when
// messaging.rabbitmq.durable is set; a configured exchange name overrides
// the topic-derived default.
func Build(ctx context.Context, props *properties.Messaging, tlsConfig *tls.Config, logger watermill.LoggerAdapter) (transport.Transport, error) {
	url := props.RabbitMQ.URL

	var amqpConfig amqp.Config
	if props.RabbitMQ.Durable {
		amqpConfig = amqp.NewDurablePubSubConfig(url, amqp.GenerateQueueNameTopicName)
	} else {
		amqpConfig = amqp.NewNonDurablePubSubConfig(url, amqp.GenerateQueueNameTopicName)
	}

	if exchange := props.RabbitMQ.Exchange; exchange != "" {
		amqpConfig.Exchange.GenerateName = func(topic string) string { return exchange }
	}

	conn, err := ConnectionFactory(amqp.ConnectionConfig{
		AmqpURI:   url,
		TLSConfig: tlsConfig,
		Reconnect: amqp.DefaultReconnectConfig(),
	}, logger)
	if err != nil {
		return transport.Transport{}, err
	}

	publisher, err := PublisherFactory(amqpConfig, logger, conn)
	if err != nil {
		return transport.Transport{}, err
	}

	subscriber, err := SubscriberFactory(amqpConfig, logger, conn)
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
	return transport.RabbitMQCapabilities
}
