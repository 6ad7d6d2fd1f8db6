package properties

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Messaging groups the messaging-client settings. System selects the backing
// broker; each backend only reads the keys that are relevant to it.
type Messaging struct {
	// System selects the backing message infrastructure. Supported values:
	// "channel", "kafka", "nats", "rabbitmq", or "aws" (SNS/SQS).
	System string `mapstructure:"system"`

	Client   Client   `mapstructure:"client"`
	Producer Producer `mapstructure:"producer"`
	Consumer Consumer `mapstructure:"consumer"`
	Admin    Admin    `mapstructure:"admin"`

	Kafka    Kafka    `mapstructure:"kafka"`
	NATS     NATS     `mapstructure:"nats"`
	RabbitMQ RabbitMQ `mapstructure:"rabbitmq"`
	AWS      AWS      `mapstructure:"aws"`

	TLS SSL `mapstructure:"tls"`
}

// Client holds broker-connection settings shared by all backends.
type Client struct {
	// ServiceURL is the broker endpoint, e.g. "kafka://localhost:9092".
	ServiceURL        string        `mapstructure:"service-url"`
	ConnectionTimeout time.Duration `mapstructure:"connection-timeout"`
	OperationTimeout  time.Duration `mapstructure:"operation-timeout"`
	KeepAliveInterval time.Duration `mapstructure:"keep-alive-interval"`
	// ConnectionPoolSize is the number of connections kept per broker.
	ConnectionPoolSize int `mapstructure:"connection-pool-size"`
	// MemoryLimit caps client-side buffering.
	MemoryLimit DataSize `mapstructure:"memory-limit"`
}

// Producer holds message-producer settings.
type Producer struct {
	Name        string        `mapstructure:"name"`
	Topic       string        `mapstructure:"topic"`
	SendTimeout time.Duration `mapstructure:"send-timeout"`
	// Compression selects the payload codec: "none", "gzip", "snappy",
	// "lz4", or "zstd".
	Compression string `mapstructure:"compression"`
	// AccessMode is "shared", "exclusive", or "wait-for-exclusive".
	AccessMode string   `mapstructure:"access-mode"`
	Batching   Batching `mapstructure:"batching"`
}

// Batching controls producer-side message batching.
type Batching struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxMessages int           `mapstructure:"max-messages"`
	MaxDelay    time.Duration `mapstructure:"max-delay"`
	MaxBytes    DataSize      `mapstructure:"max-bytes"`
}

// Consumer holds message-consumer settings.
type Consumer struct {
	SubscriptionName string `mapstructure:"subscription-name"`
	// SubscriptionType is "exclusive", "shared", "failover", or "key-shared".
	SubscriptionType string `mapstructure:"subscription-type"`
	// InitialPosition is "latest" or "earliest".
	InitialPosition     string        `mapstructure:"initial-position"`
	Topics              []string      `mapstructure:"topics"`
	ReceiverQueueSize   int           `mapstructure:"receiver-queue-size"`
	AckTimeout          time.Duration `mapstructure:"ack-timeout"`
	NackRedeliveryDelay time.Duration `mapstructure:"nack-redelivery-delay"`
	DeadLetter          DeadLetter    `mapstructure:"dead-letter"`
}

// DeadLetter configures where exhausted messages are routed.
type DeadLetter struct {
	MaxRedeliveries int    `mapstructure:"max-redeliveries"`
	Topic           string `mapstructure:"topic"`
}

// Admin holds administrative-client settings.
type Admin struct {
	ServiceURL     string        `mapstructure:"service-url"`
	ConnectTimeout time.Duration `mapstructure:"connect-timeout"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
}

// Kafka holds Kafka-specific settings.
type Kafka struct {
	Brokers       []string `mapstructure:"brokers"`
	ClientID      string   `mapstructure:"client-id"`
	ConsumerGroup string   `mapstructure:"consumer-group"`
	// FetchMax caps the size of a single consumer fetch.
	FetchMax DataSize `mapstructure:"fetch-max"`
}

// NATS holds NATS-specific settings.
type NATS struct {
	URL string `mapstructure:"url"`
	// JetStream enables the persistent JetStream engine instead of core NATS.
	JetStream bool   `mapstructure:"jetstream"`
	Stream    string `mapstructure:"stream"`
}

// RabbitMQ holds RabbitMQ/AMQP-specific settings.
type RabbitMQ struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
	Durable  bool   `mapstructure:"durable"`
}

// AWS holds SNS/SQS-specific settings.
type AWS struct {
	Region          string `mapstructure:"region"`
	AccountID       string `mapstructure:"account-id"`
	AccessKeyID     string `mapstructure:"access-key-id"`
	SecretAccessKey string `mapstructure:"secret-access-key"`
	// Endpoint optionally points at a custom endpoint (for example,
	// LocalStack in local development).
	Endpoint string `mapstructure:"endpoint"`
}

var (
	compressionValues      = []string{"", "none", "gzip", "snappy", "lz4", "zstd"}
	accessModeValues       = []string{"", "shared", "exclusive", "wait-for-exclusive"}
	subscriptionTypeValues = []string{"", "exclusive", "shared", "failover", "key-shared"}
	initialPositionValues  = []string{"", "latest", "earliest"}
)

// Validate checks backend-specific required fields and enum values.
// Validation of the system value itself is lenient so custom transport
// builders can be registered under new names.
func (m *Messaging) Validate() error {
	var errs []error

	switch strings.ToLower(m.System) {
	case "kafka":
		if len(m.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("messaging.kafka.brokers: required when system is kafka"))
		}
	case "nats":
		if m.NATS.URL == "" {
			errs = append(errs, errors.New("messaging.nats.url: required when system is nats"))
		}
	case "rabbitmq":
		if m.RabbitMQ.URL == "" {
			errs = append(errs, errors.New("messaging.rabbitmq.url: required when system is rabbitmq"))
		}
	case "aws":
		if m.AWS.Region == "" {
			errs = append(errs, errors.New("messaging.aws.region: required when system is aws"))
		}
	}

	if !contains(compressionValues, strings.ToLower(m.Producer.Compression)) {
		errs = append(errs, fmt.Errorf("messaging.producer.compression: unknown codec %q", m.Producer.Compression))
	}
	if !contains(accessModeValues, strings.ToLower(m.Producer.AccessMode)) {
		errs = append(errs, fmt.Errorf("messaging.producer.access-mode: unknown mode %q", m.Producer.AccessMode))
	}
	if !contains(subscriptionTypeValues, strings.ToLower(m.Consumer.SubscriptionType)) {
		errs = append(errs, fmt.Errorf("messaging.consumer.subscription-type: unknown type %q", m.Consumer.SubscriptionType))
	}
	if !contains(initialPositionValues, strings.ToLower(m.Consumer.InitialPosition)) {
		errs = append(errs, fmt.Errorf("messaging.consumer.initial-position: unknown position %q", m.Consumer.InitialPosition))
	}

	if m.Producer.SendTimeout < 0 {
		errs = append(errs, errors.New("messaging.producer.send-timeout: cannot be negative"))
	}
	if m.Consumer.ReceiverQueueSize < 0 {
		errs = append(errs, errors.New("messaging.consumer.receiver-queue-size: cannot be negative"))
	}
	if m.Consumer.DeadLetter.MaxRedeliveries < 0 {
		errs = append(errs, errors.New("messaging.consumer.dead-letter.max-redeliveries: cannot be negative"))
	}

	if err := m.TLS.Validate("messaging.tls"); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
