package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/wireup/properties"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wireup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
messaging:
  system: kafka
  client:
    connection-timeout: 5s
    memory-limit: 32MB
  producer:
    compression: zstd
    batching:
      max-bytes: 256KB
  kafka:
    brokers:
      - broker-1:9092
      - broker-2:9092
    consumer-group: orders
migration:
  enabled: true
  database-url: postgres://app@db:5432/app
  locations:
    - db/migration
`)

	props, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "kafka", props.Messaging.System)
	assert.Equal(t, 5*time.Second, props.Messaging.Client.ConnectionTimeout)
	assert.Equal(t, 32*properties.Megabyte, props.Messaging.Client.MemoryLimit)
	assert.Equal(t, "zstd", props.Messaging.Producer.Compression)
	assert.Equal(t, 256*properties.Kilobyte, props.Messaging.Producer.Batching.MaxBytes)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, props.Messaging.Kafka.Brokers)
	assert.Equal(t, "orders", props.Messaging.Kafka.ConsumerGroup)
	assert.True(t, props.Migration.Enabled)

	// Untouched keys keep their defaults.
	assert.Equal(t, 30*time.Second, props.Messaging.Client.OperationTimeout)
	assert.Equal(t, "schema_history", props.Migration.Table)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
messaging:
  system: kafka
  kafka:
    brokers:
      - file-broker:9092
`)

	t.Setenv("WIREUP_MESSAGING_KAFKA_BROKERS", "env-broker:9092")
	t.Setenv("WIREUP_MESSAGING_CLIENT_CONNECTION_TIMEOUT", "3s")
	t.Setenv("WIREUP_MESSAGING_CLIENT_MEMORY_LIMIT", "16MB")

	props, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"env-broker:9092"}, props.Messaging.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, props.Messaging.Client.ConnectionTimeout)
	assert.Equal(t, 16*properties.Megabyte, props.Messaging.Client.MemoryLimit)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	props, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "channel", props.Messaging.System)
	assert.Equal(t, 64*properties.Megabyte, props.Messaging.Client.MemoryLimit)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
messaging:
  system: kafka
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "messaging.kafka.brokers")
}

func TestLoad_BadDataSize(t *testing.T) {
	path := writeConfig(t, `
messaging:
  client:
    memory-limit: lots
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding properties")
}
