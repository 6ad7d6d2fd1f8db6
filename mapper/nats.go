package mapper

import (
	"crypto/tls"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/drblury/wireup/properties"
)

// NATSOptions maps the messaging properties onto nats.go connection options.
func NATSOptions(m *properties.Messaging, tlsConfig *tls.Config) []nats.Option {
	var opts []nats.Option

	From(m.Client.ConnectionTimeout).Apply(func(v time.Duration) {
		opts = append(opts, nats.Timeout(v))
	})
	From(m.Client.KeepAliveInterval).Apply(func(v time.Duration) {
		opts = append(opts, nats.PingInterval(v))
	})
	From(m.Producer.Name).Apply(func(v string) {
		opts = append(opts, nats.Name(v))
	})
	if tlsConfig != nil {
		opts = append(opts, nats.Secure(tlsConfig))
	}

	return opts
}
