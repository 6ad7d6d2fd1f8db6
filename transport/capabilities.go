package transport

// Capabilities describes the features supported by a messaging backend.
// Use this to introspect what operations are available at runtime.
type Capabilities struct {
	// Name is the human-readable name of the backend.
	Name string

	// SupportsDelay indicates the backend can natively delay delivery.
	SupportsDelay bool

	// SupportsNativeDLQ indicates built-in dead letter queue support.
	SupportsNativeDLQ bool

	// SupportsOrdering indicates the backend guarantees message ordering.
	SupportsOrdering bool

	// SupportsBatching indicates the backend can batch multiple messages.
	SupportsBatching bool

	// SupportsAck indicates explicit message acknowledgment.
	SupportsAck bool

	// SupportsNack indicates negative acknowledgment (redelivery).
	SupportsNack bool

	// SupportsPartitioning indicates message partitioning support.
	SupportsPartitioning bool

	// SupportsTLS indicates the backend honors a wired TLS config.
	SupportsTLS bool

	// MaxMessageSize is the maximum message size in bytes (0 = unknown).
	MaxMessageSize int64
}

// SupportsReliableDelivery returns true if the backend supports
// at-least-once delivery semantics (ack + nack).
func (c Capabilities) SupportsReliableDelivery() bool {
	return c.SupportsAck && c.SupportsNack
}

// Predefined capability sets for the built-in backends.
var (
	// ChannelCapabilities for the in-memory Go channel backend.
	ChannelCapabilities = Capabilities{
		Name:             "channel",
		SupportsOrdering: true,
		SupportsAck:      true,
		SupportsNack:     true,
	}

	// KafkaCapabilities for the Apache Kafka backend.
	KafkaCapabilities = Capabilities{
		Name:                 "kafka",
		SupportsOrdering:     true,
		SupportsBatching:     true,
		SupportsAck:          true,
		SupportsPartitioning: true,
		SupportsTLS:          true,
		MaxMessageSize:       1048576, // Default 1MB
	}

	// NATSCapabilities for the NATS Core backend.
	NATSCapabilities = Capabilities{
		Name:           "nats",
		SupportsTLS:    true,
		MaxMessageSize: 1048576, // Default 1MB
	}

	// NATSJetStreamCapabilities for the NATS JetStream backend.
	NATSJetStreamCapabilities = Capabilities{
		Name:              "nats-jetstream",
		SupportsDelay:     true,
		SupportsNativeDLQ: true,
		SupportsOrdering:  true,
		SupportsBatching:  true,
		SupportsAck:       true,
		SupportsNack:      true,
		SupportsTLS:       true,
		MaxMessageSize:    1048576, // Default 1MB
	}

	// RabbitMQCapabilities for the RabbitMQ/AMQP backend.
	RabbitMQCapabilities = Capabilities{
		Name:              "rabbitmq",
		SupportsDelay:     true,
		SupportsNativeDLQ: true,
		SupportsOrdering:  true,
		SupportsAck:       true,
		SupportsNack:      true,
		SupportsTLS:       true,
	}

	// AWSCapabilities for the AWS SNS/SQS backend.
	AWSCapabilities = Capabilities{
		Name:              "aws",
		SupportsDelay:     true,
		SupportsNativeDLQ: true,
		SupportsOrdering:  true,
		SupportsBatching:  true,
		SupportsAck:       true,
		SupportsNack:      true,
		MaxMessageSize:    262144, // 256KB
	}
)
