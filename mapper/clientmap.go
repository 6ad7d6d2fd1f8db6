package mapper

import (
	"time"

	"github.com/drblury/wireup/properties"
)

// ClientConfigMap renders the shared client settings as the key/value
// configuration map expected by map-driven client libraries. Durations are
// converted to milliseconds and data sizes to bytes; unset fields are
// omitted so client defaults apply.
func ClientConfigMap(m *properties.Messaging) map[string]any {
	out := make(map[string]any)

	From(m.Client.ServiceURL).Apply(func(v string) { out["serviceUrl"] = v })
	From(m.Client.ConnectionTimeout).Apply(func(v time.Duration) { out["connectionTimeoutMs"] = AsMillis(v) })
	From(m.Client.OperationTimeout).Apply(func(v time.Duration) { out["operationTimeoutMs"] = AsMillis(v) })
	From(m.Client.KeepAliveInterval).Apply(func(v time.Duration) { out["keepAliveIntervalMs"] = AsMillis(v) })
	From(m.Client.ConnectionPoolSize).Apply(func(v int) { out["connectionsPerBroker"] = v })
	From(m.Client.MemoryLimit).Apply(func(v properties.DataSize) { out["memoryLimitBytes"] = AsBytes(v) })

	return out
}

// ProducerConfigMap renders the producer settings as a configuration map.
func ProducerConfigMap(m *properties.Messaging) map[string]any {
	out := make(map[string]any)

	From(m.Producer.Name).Apply(func(v string) { out["producerName"] = v })
	From(m.Producer.Topic).Apply(func(v string) { out["topicName"] = v })
	From(m.Producer.SendTimeout).Apply(func(v time.Duration) { out["sendTimeoutMs"] = AsMillis(v) })
	From(m.Producer.Compression).Apply(func(v string) { out["compressionType"] = v })
	From(m.Producer.AccessMode).Apply(func(v string) { out["accessMode"] = v })

	out["batchingEnabled"] = m.Producer.Batching.Enabled
	if m.Producer.Batching.Enabled {
		From(m.Producer.Batching.MaxMessages).Apply(func(v int) { out["batchingMaxMessages"] = v })
		From(m.Producer.Batching.MaxDelay).Apply(func(v time.Duration) { out["batchingMaxPublishDelayMs"] = AsMillis(v) })
		From(m.Producer.Batching.MaxBytes).Apply(func(v properties.DataSize) { out["batchingMaxBytes"] = AsBytes(v) })
	}

	return out
}

// ConsumerConfigMap renders the consumer settings as a configuration map.
func ConsumerConfigMap(m *properties.Messaging) map[string]any {
	out := make(map[string]any)

	From(m.Consumer.SubscriptionName).Apply(func(v string) { out["subscriptionName"] = v })
	From(m.Consumer.SubscriptionType).Apply(func(v string) { out["subscriptionType"] = v })
	From(m.Consumer.InitialPosition).Apply(func(v string) { out["subscriptionInitialPosition"] = v })
	if len(m.Consumer.Topics) > 0 {
		out["topicNames"] = m.Consumer.Topics
	}
	From(m.Consumer.ReceiverQueueSize).Apply(func(v int) { out["receiverQueueSize"] = v })
	From(m.Consumer.AckTimeout).Apply(func(v time.Duration) { out["ackTimeoutMs"] = AsMillis(v) })
	From(m.Consumer.NackRedeliveryDelay).Apply(func(v time.Duration) { out["negativeAckRedeliveryDelayMs"] = AsMillis(v) })

	if m.Consumer.DeadLetter.Topic != "" || m.Consumer.DeadLetter.MaxRedeliveries > 0 {
		dlq := make(map[string]any)
		From(m.Consumer.DeadLetter.MaxRedeliveries).Apply(func(v int) { dlq["maxRedeliverCount"] = v })
		From(m.Consumer.DeadLetter.Topic).Apply(func(v string) { dlq["deadLetterTopic"] = v })
		out["deadLetterPolicy"] = dlq
	}

	return out
}

// AdminConfigMap renders the admin-client settings as a configuration map.
func AdminConfigMap(m *properties.Messaging) map[string]any {
	out := make(map[string]any)

	From(m.Admin.ServiceURL).Apply(func(v string) { out["serviceUrl"] = v })
	From(m.Admin.ConnectTimeout).Apply(func(v time.Duration) { out["connectTimeoutMs"] = AsMillis(v) })
	From(m.Admin.ReadTimeout).Apply(func(v time.Duration) { out["readTimeoutMs"] = AsMillis(v) })

	return out
}
