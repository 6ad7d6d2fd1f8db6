package mapper

import (
	"crypto/tls"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"

	"github.com/drblury/wireup/properties"
)

func TestSaramaConfig(t *testing.T) {
	m := &properties.Messaging{
		Client: properties.Client{
			ConnectionTimeout: 15 * time.Second,
			KeepAliveInterval: time.Minute,
		},
		Producer: properties.Producer{
			SendTimeout: 20 * time.Second,
			Compression: "snappy",
			Batching: properties.Batching{
				Enabled:     true,
				MaxMessages: 500,
				MaxDelay:    25 * time.Millisecond,
				MaxBytes:    256 * properties.Kilobyte,
			},
		},
		Consumer: properties.Consumer{InitialPosition: "earliest"},
		Kafka: properties.Kafka{
			ClientID: "wireup-test",
			FetchMax: properties.Megabyte,
		},
	}

	conf := SaramaConfig(m, nil)

	assert.Equal(t, "wireup-test", conf.ClientID)
	assert.Equal(t, 15*time.Second, conf.Net.DialTimeout)
	assert.Equal(t, time.Minute, conf.Net.KeepAlive)
	assert.Equal(t, 20*time.Second, conf.Producer.Timeout)
	assert.Equal(t, 500, conf.Producer.Flush.MaxMessages)
	assert.Equal(t, 25*time.Millisecond, conf.Producer.Flush.Frequency)
	assert.Equal(t, 256*1024, conf.Producer.Flush.Bytes)
	assert.Equal(t, sarama.CompressionSnappy, conf.Producer.Compression)
	assert.Equal(t, int32(1024*1024), conf.Consumer.Fetch.Max)
	assert.Equal(t, sarama.OffsetOldest, conf.Consumer.Offsets.Initial)
	assert.False(t, conf.Net.TLS.Enable)
}

func TestSaramaConfig_Defaults(t *testing.T) {
	conf := SaramaConfig(&properties.Messaging{}, nil)
	fresh := sarama.NewConfig()

	// Unset properties leave the sarama defaults intact.
	assert.Equal(t, fresh.Net.DialTimeout, conf.Net.DialTimeout)
	assert.Equal(t, fresh.Producer.Flush.MaxMessages, conf.Producer.Flush.MaxMessages)
	assert.Equal(t, sarama.CompressionNone, conf.Producer.Compression)
	assert.Equal(t, fresh.Consumer.Offsets.Initial, conf.Consumer.Offsets.Initial)
}

func TestSaramaConfig_TLS(t *testing.T) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	conf := SaramaConfig(&properties.Messaging{}, tlsConfig)

	assert.True(t, conf.Net.TLS.Enable)
	assert.Same(t, tlsConfig, conf.Net.TLS.Config)
}

func TestSaramaCompression(t *testing.T) {
	cases := map[string]sarama.CompressionCodec{
		"gzip":   sarama.CompressionGZIP,
		"snappy": sarama.CompressionSnappy,
		"lz4":    sarama.CompressionLZ4,
		"ZSTD":   sarama.CompressionZSTD,
		"none":   sarama.CompressionNone,
		"":       sarama.CompressionNone,
	}

	for input, want := range cases {
		assert.Equal(t, want, saramaCompression(input), "codec %q", input)
	}
}
