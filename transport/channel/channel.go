// Package channel provides an in-memory Go channel backend for wireup.
// This backend is useful for testing and local development.
package channel

import (
	"context"
	"crypto/tls"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/drblury/wireup/properties"
	"github.com/drblury/wireup/transport"
)

// BackendName is the name used to register this backend.
const BackendName = "channel"

// Factory allows overriding the channel creation for testing.
var Factory = func(cfg gochannel.Config, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber) {
	pubSub := gochannel.NewGoChannel(cfg, logger)
	return pubSub, pubSub
}

func init() {
	transport.RegisterWithCapabilities(BackendName, Build, transport.ChannelCapabilities)
}

// Build creates a new Go channel transport.
func Build(ctx context.Context, props *properties.Messaging, tlsConfig *tls.Config, logger watermill.LoggerAdapter) (transport.Transport, error) {
	cfg := gochannel.Config{}
	if props != nil && props.Consumer.ReceiverQueueSize > 0 {
		cfg.OutputChannelBuffer = int64(props.Consumer.ReceiverQueueSize)
	}

	pub, sub := Factory(cfg, logger)
	return transport.Transport{
		Publisher:  pub,
		Subscriber: sub,
	}, nil
}

// Capabilities returns the capabilities of this backend.
func Capabilities() transport.Capabilities {
	return transport.ChannelCapabilities
}
