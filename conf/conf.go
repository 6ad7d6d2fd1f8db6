// Package conf loads wireup properties from YAML files and environment
// variables. Environment variables use the WIREUP_ prefix with dots and
// dashes replaced by underscores, e.g. WIREUP_MESSAGING_KAFKA_BROKERS.
package conf

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/drblury/wireup/properties"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "WIREUP"

// Load reads properties from the given config file, layers environment
// variables on top, and validates the result. An empty path searches for a
// wireup.yaml in the working directory and /etc/wireup; a missing file is
// only an error when the path was explicit.
func Load(path string) (*properties.Properties, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("wireup: reading config file %q: %w", path, err)
		}
	} else {
		v.SetConfigName("wireup")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/wireup")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("wireup: reading config: %w", err)
			}
		}
	}

	props := properties.New()
	if err := v.Unmarshal(props, viper.DecodeHook(decodeHooks())); err != nil {
		return nil, fmt.Errorf("wireup: decoding properties: %w", err)
	}

	if err := props.Validate(); err != nil {
		return nil, err
	}

	return props, nil
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToDataSizeHookFunc(),
	)
}

// stringToDataSizeHookFunc decodes strings like "128KB" into a DataSize.
func stringToDataSizeHookFunc() mapstructure.DecodeHookFunc {
	dataSizeType := reflect.TypeOf(properties.DataSize(0))
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != dataSizeType {
			return data, nil
		}
		return properties.ParseDataSize(data.(string))
	}
}

// setDefaults registers every known key with its default so environment
// variables resolve without a config file. Values come from properties.New
// so the defaults live in exactly one place.
func setDefaults(v *viper.Viper) {
	d := properties.New()

	v.SetDefault("messaging.system", d.Messaging.System)
	v.SetDefault("messaging.client.service-url", d.Messaging.Client.ServiceURL)
	v.SetDefault("messaging.client.connection-timeout", d.Messaging.Client.ConnectionTimeout)
	v.SetDefault("messaging.client.operation-timeout", d.Messaging.Client.OperationTimeout)
	v.SetDefault("messaging.client.keep-alive-interval", d.Messaging.Client.KeepAliveInterval)
	v.SetDefault("messaging.client.connection-pool-size", d.Messaging.Client.ConnectionPoolSize)
	v.SetDefault("messaging.client.memory-limit", d.Messaging.Client.MemoryLimit.String())
	v.SetDefault("messaging.producer.name", d.Messaging.Producer.Name)
	v.SetDefault("messaging.producer.topic", d.Messaging.Producer.Topic)
	v.SetDefault("messaging.producer.send-timeout", d.Messaging.Producer.SendTimeout)
	v.SetDefault("messaging.producer.compression", d.Messaging.Producer.Compression)
	v.SetDefault("messaging.producer.access-mode", d.Messaging.Producer.AccessMode)
	v.SetDefault("messaging.producer.batching.enabled", d.Messaging.Producer.Batching.Enabled)
	v.SetDefault("messaging.producer.batching.max-messages", d.Messaging.Producer.Batching.MaxMessages)
	v.SetDefault("messaging.producer.batching.max-delay", d.Messaging.Producer.Batching.MaxDelay)
	v.SetDefault("messaging.producer.batching.max-bytes", d.Messaging.Producer.Batching.MaxBytes.String())
	v.SetDefault("messaging.consumer.subscription-name", d.Messaging.Consumer.SubscriptionName)
	v.SetDefault("messaging.consumer.subscription-type", d.Messaging.Consumer.SubscriptionType)
	v.SetDefault("messaging.consumer.initial-position", d.Messaging.Consumer.InitialPosition)
	v.SetDefault("messaging.consumer.topics", d.Messaging.Consumer.Topics)
	v.SetDefault("messaging.consumer.receiver-queue-size", d.Messaging.Consumer.ReceiverQueueSize)
	v.SetDefault("messaging.consumer.ack-timeout", d.Messaging.Consumer.AckTimeout)
	v.SetDefault("messaging.consumer.nack-redelivery-delay", d.Messaging.Consumer.NackRedeliveryDelay)
	v.SetDefault("messaging.consumer.dead-letter.max-redeliveries", d.Messaging.Consumer.DeadLetter.MaxRedeliveries)
	v.SetDefault("messaging.consumer.dead-letter.topic", d.Messaging.Consumer.DeadLetter.Topic)
	v.SetDefault("messaging.admin.connect-timeout", d.Messaging.Admin.ConnectTimeout)
	v.SetDefault("messaging.admin.read-timeout", d.Messaging.Admin.ReadTimeout)
	v.SetDefault("messaging.kafka.brokers", d.Messaging.Kafka.Brokers)
	v.SetDefault("messaging.kafka.client-id", d.Messaging.Kafka.ClientID)
	v.SetDefault("messaging.kafka.consumer-group", d.Messaging.Kafka.ConsumerGroup)
	v.SetDefault("messaging.kafka.fetch-max", d.Messaging.Kafka.FetchMax.String())
	v.SetDefault("messaging.nats.url", d.Messaging.NATS.URL)
	v.SetDefault("messaging.nats.jetstream", d.Messaging.NATS.JetStream)
	v.SetDefault("messaging.nats.stream", d.Messaging.NATS.Stream)
	v.SetDefault("messaging.rabbitmq.url", d.Messaging.RabbitMQ.URL)
	v.SetDefault("messaging.rabbitmq.exchange", d.Messaging.RabbitMQ.Exchange)
	v.SetDefault("messaging.rabbitmq.durable", d.Messaging.RabbitMQ.Durable)
	v.SetDefault("messaging.aws.region", d.Messaging.AWS.Region)
	v.SetDefault("messaging.aws.account-id", d.Messaging.AWS.AccountID)
	v.SetDefault("messaging.aws.access-key-id", d.Messaging.AWS.AccessKeyID)
	v.SetDefault("messaging.aws.secret-access-key", d.Messaging.AWS.SecretAccessKey)
	v.SetDefault("messaging.aws.endpoint", d.Messaging.AWS.Endpoint)
	v.SetDefault("messaging.tls.enabled", d.Messaging.TLS.Enabled)
	v.SetDefault("messaging.tls.bundle", d.Messaging.TLS.Bundle)
	v.SetDefault("messaging.tls.cert-file", d.Messaging.TLS.CertFile)
	v.SetDefault("messaging.tls.key-file", d.Messaging.TLS.KeyFile)
	v.SetDefault("messaging.tls.ca-file", d.Messaging.TLS.CAFile)
	v.SetDefault("messaging.tls.insecure-skip-verify", d.Messaging.TLS.InsecureSkipVerify)
	v.SetDefault("web.enabled", d.Web.Enabled)
	v.SetDefault("batch.enabled", d.Batch.Enabled)
	v.SetDefault("migration.enabled", d.Migration.Enabled)
	v.SetDefault("migration.database-url", d.Migration.DatabaseURL)
	v.SetDefault("migration.locations", d.Migration.Locations)
	v.SetDefault("migration.table", d.Migration.Table)
	v.SetDefault("migration.baseline-version", d.Migration.BaselineVersion)
	v.SetDefault("migration.connect-timeout", d.Migration.ConnectTimeout)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("metrics.port", d.Metrics.Port)
}
