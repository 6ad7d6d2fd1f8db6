package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/drblury/wireup/properties"
)

func TestFrom_To(t *testing.T) {
	t.Run("copies set values", func(t *testing.T) {
		dst := "default"
		From("configured").To(&dst)
		assert.Equal(t, "configured", dst)
	})

	t.Run("leaves destination alone for zero values", func(t *testing.T) {
		dst := "default"
		From("").To(&dst)
		assert.Equal(t, "default", dst)

		n := 42
		From(0).To(&n)
		assert.Equal(t, 42, n)
	})
}

func TestFrom_Apply(t *testing.T) {
	var called bool
	From(time.Duration(0)).Apply(func(time.Duration) { called = true })
	assert.False(t, called)

	var got int64
	From(5 * time.Second).Apply(func(v time.Duration) { got = AsMillis(v) })
	assert.Equal(t, int64(5000), got)
}

func TestIsSet(t *testing.T) {
	assert.True(t, From(1).IsSet())
	assert.False(t, From(0).IsSet())
	assert.True(t, From("x").IsSet())
	assert.False(t, From("").IsSet())
	assert.True(t, From(true).IsSet())
}

func TestConversions(t *testing.T) {
	assert.Equal(t, int64(1500), AsMillis(1500*time.Millisecond))
	assert.Equal(t, int64(30), AsSeconds(30*time.Second))
	assert.Equal(t, int64(128*1024), AsBytes(128*properties.Kilobyte))
}

func TestClientConfigMap(t *testing.T) {
	m := &properties.Messaging{
		Client: properties.Client{
			ServiceURL:         "pulsar://localhost:6650",
			ConnectionTimeout:  10 * time.Second,
			OperationTimeout:   30 * time.Second,
			ConnectionPoolSize: 2,
			MemoryLimit:        64 * properties.Megabyte,
		},
	}

	out := ClientConfigMap(m)

	assert.Equal(t, "pulsar://localhost:6650", out["serviceUrl"])
	assert.Equal(t, int64(10000), out["connectionTimeoutMs"])
	assert.Equal(t, int64(30000), out["operationTimeoutMs"])
	assert.Equal(t, 2, out["connectionsPerBroker"])
	assert.Equal(t, int64(64*1024*1024), out["memoryLimitBytes"])

	// KeepAliveInterval was never set, so the key must be absent.
	assert.NotContains(t, out, "keepAliveIntervalMs")
}

func TestProducerConfigMap(t *testing.T) {
	t.Run("batching enabled", func(t *testing.T) {
		m := &properties.Messaging{
			Producer: properties.Producer{
				Name:        "orders-producer",
				Topic:       "orders",
				SendTimeout: 30 * time.Second,
				Compression: "zstd",
				Batching: properties.Batching{
					Enabled:     true,
					MaxMessages: 1000,
					MaxDelay:    10 * time.Millisecond,
					MaxBytes:    128 * properties.Kilobyte,
				},
			},
		}

		out := ProducerConfigMap(m)

		assert.Equal(t, "orders-producer", out["producerName"])
		assert.Equal(t, "orders", out["topicName"])
		assert.Equal(t, int64(30000), out["sendTimeoutMs"])
		assert.Equal(t, "zstd", out["compressionType"])
		assert.Equal(t, true, out["batchingEnabled"])
		assert.Equal(t, 1000, out["batchingMaxMessages"])
		assert.Equal(t, int64(10), out["batchingMaxPublishDelayMs"])
		assert.Equal(t, int64(128*1024), out["batchingMaxBytes"])
	})

	t.Run("batching disabled omits batch keys", func(t *testing.T) {
		m := &properties.Messaging{
			Producer: properties.Producer{
				Batching: properties.Batching{MaxMessages: 1000},
			},
		}

		out := ProducerConfigMap(m)

		assert.Equal(t, false, out["batchingEnabled"])
		assert.NotContains(t, out, "batchingMaxMessages")
	})
}

func TestConsumerConfigMap(t *testing.T) {
	m := &properties.Messaging{
		Consumer: properties.Consumer{
			SubscriptionName:    "orders-sub",
			SubscriptionType:    "shared",
			InitialPosition:     "earliest",
			Topics:              []string{"orders", "refunds"},
			ReceiverQueueSize:   500,
			AckTimeout:          20 * time.Second,
			NackRedeliveryDelay: time.Minute,
			DeadLetter: properties.DeadLetter{
				MaxRedeliveries: 5,
				Topic:           "orders-dlq",
			},
		},
	}

	out := ConsumerConfigMap(m)

	assert.Equal(t, "orders-sub", out["subscriptionName"])
	assert.Equal(t, "shared", out["subscriptionType"])
	assert.Equal(t, "earliest", out["subscriptionInitialPosition"])
	assert.Equal(t, []string{"orders", "refunds"}, out["topicNames"])
	assert.Equal(t, 500, out["receiverQueueSize"])
	assert.Equal(t, int64(20000), out["ackTimeoutMs"])
	assert.Equal(t, int64(60000), out["negativeAckRedeliveryDelayMs"])

	dlq, ok := out["deadLetterPolicy"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, 5, dlq["maxRedeliverCount"])
	assert.Equal(t, "orders-dlq", dlq["deadLetterTopic"])
}

func TestConsumerConfigMap_NoDeadLetter(t *testing.T) {
	out := ConsumerConfigMap(&properties.Messaging{})
	assert.NotContains(t, out, "deadLetterPolicy")
	assert.NotContains(t, out, "topicNames")
}

func TestAdminConfigMap(t *testing.T) {
	m := &properties.Messaging{
		Admin: properties.Admin{
			ServiceURL:     "http://localhost:8080",
			ConnectTimeout: 10 * time.Second,
			ReadTimeout:    30 * time.Second,
		},
	}

	out := AdminConfigMap(m)

	assert.Equal(t, "http://localhost:8080", out["serviceUrl"])
	assert.Equal(t, int64(10000), out["connectTimeoutMs"])
	assert.Equal(t, int64(30000), out["readTimeoutMs"])
}
