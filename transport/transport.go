// Package transport defines the core interfaces and types for wireup
// messaging backends. Each backend (kafka, rabbitmq, nats, aws, channel)
// lives in its own sub-package and registers itself with the registry; the
// wiring layer then selects one by the configured system name.
package transport

import (
	"context"
	"crypto/tls"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/wireup/properties"
)

// Transport combines a publisher and subscriber pair produced by a builder.
type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// Builder is the function signature for constructing a transport from the
// bound messaging properties. A nil tlsConfig means plaintext.
type Builder func(ctx context.Context, props *properties.Messaging, tlsConfig *tls.Config, logger watermill.LoggerAdapter) (Transport, error)

// CapabilitiesProvider is implemented by backends that can report their
// capabilities.
type CapabilitiesProvider interface {
	Capabilities() Capabilities
}
