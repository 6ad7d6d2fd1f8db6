// Package nats provides a NATS backend for wireup. Core NATS is the default;
// setting messaging.nats.jetstream enables the persistent JetStream engine.
package nats

import (
	"context"
	"crypto/tls"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/wireup/mapper"
	"github.com/drblury/wireup/properties"
	"github.com/drblury/wireup/transport"
)

// BackendName is the name used to register this backend.
const BackendName = "nats"

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(cfg wmnats.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return wmnats.NewPublisher(cfg, logger)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(cfg wmnats.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return wmnats.NewSubscriber(cfg, logger)
}

func init() {
	transport.RegisterWithCapabilities(BackendName, Build, transport.NATSCapabilities)
}

// Build creates a new NATS transport.
func Build(ctx context.Context, props *properties.Messaging, tlsConfig *tls.Config, logger watermill.LoggerAdapter) (transport.Transport, error) {
	url := props.NATS.URL
	opts := mapper.NATSOptions(props, tlsConfig)
	marshaler := &wmnats.NATSMarshaler{}

	jetStream := wmnats.JetStreamConfig{
		Disabled:      !props.NATS.JetStream,
		AutoProvision: props.NATS.JetStream,
	}

	publisher, err := PublisherFactory(
		wmnats.PublisherConfig{
			URL:         url,
			NatsOptions: opts,
			Marshaler:   marshaler,
			JetStream:   jetStream,
		},
		logger,
	)
	if err != nil {
		return transport.Transport{}, err
	}

	subscriber, err := SubscriberFactory(
		wmnats.SubscriberConfig{
			URL:         url,
			NatsOptions: opts,
			Unmarshaler: marshaler,
			JetStream:   jetStream,
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

// Capabilities reports the configured engine's capabilities: JetStream when
// enabled, core NATS otherwise.
func Capabilities(props *properties.Messaging) transport.Capabilities {
	if props != nil && props.NATS.JetStream {
		return transport.NATSJetStreamCapabilities
	}
	return transport.NATSCapabilities
}
