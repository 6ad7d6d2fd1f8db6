package mapper

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/drblury/wireup/properties"
)

// SaramaConfig maps the messaging properties onto a sarama.Config. Only set
// fields are copied; everything else keeps the sarama default.
func SaramaConfig(m *properties.Messaging, tlsConfig *tls.Config) *sarama.Config {
	conf := sarama.NewConfig()

	From(m.Kafka.ClientID).To(&conf.ClientID)
	From(m.Client.ConnectionTimeout).To(&conf.Net.DialTimeout)
	From(m.Client.KeepAliveInterval).To(&conf.Net.KeepAlive)
	From(m.Producer.SendTimeout).To(&conf.Producer.Timeout)

	if m.Producer.Batching.Enabled {
		From(m.Producer.Batching.MaxMessages).To(&conf.Producer.Flush.MaxMessages)
		From(m.Producer.Batching.MaxDelay).Apply(func(v time.Duration) {
			conf.Producer.Flush.Frequency = v
		})
		From(m.Producer.Batching.MaxBytes).Apply(func(v properties.DataSize) {
			conf.Producer.Flush.Bytes = int(AsBytes(v))
		})
	}

	conf.Producer.Compression = saramaCompression(m.Producer.Compression)

	From(m.Kafka.FetchMax).Apply(func(v properties.DataSize) {
		conf.Consumer.Fetch.Max = int32(AsBytes(v))
	})
	if strings.EqualFold(m.Consumer.InitialPosition, "earliest") {
		conf.Consumer.Offsets.Initial = sarama.OffsetOldest
	}

	if tlsConfig != nil {
		conf.Net.TLS.Enable = true
		conf.Net.TLS.Config = tlsConfig
	}

	return conf
}

func saramaCompression(codec string) sarama.CompressionCodec {
	switch strings.ToLower(codec) {
	case "gzip":
		return sarama.CompressionGZIP
	case "snappy":
		return sarama.CompressionSnappy
	case "lz4":
		return sarama.CompressionLZ4
	case "zstd":
		return sarama.CompressionZSTD
	default:
		return sarama.CompressionNone
	}
}
