package wireup

import (
	"github.com/drblury/wireup/conf"
	"github.com/drblury/wireup/internal/logging"
	"github.com/drblury/wireup/metrics"
	"github.com/drblury/wireup/migrate"
	"github.com/drblury/wireup/properties"
	"github.com/drblury/wireup/scheduler"
	"github.com/drblury/wireup/tlsconf"
	"github.com/drblury/wireup/transport"
	"github.com/drblury/wireup/web"
	"github.com/drblury/wireup/wiring"

	// Compiled-in transport backends register themselves on import.
	_ "github.com/drblury/wireup/transport/aws"
	_ "github.com/drblury/wireup/transport/channel"
	_ "github.com/drblury/wireup/transport/kafka"
	_ "github.com/drblury/wireup/transport/nats"
	_ "github.com/drblury/wireup/transport/rabbitmq"
)

// Configuration holders and value types.
type (
	Properties             = properties.Properties
	MessagingProperties    = properties.Messaging
	WebProperties          = properties.Web
	BatchProperties        = properties.Batch
	MigrationProperties    = properties.Migration
	MetricsProperties      = properties.Metrics
	SSLProperties          = properties.SSL
	DataSize               = properties.DataSize
	MutuallyExclusiveError = properties.MutuallyExclusiveError
)

// Wiring primitives.
type (
	Container  = wiring.Container
	Configurer = wiring.Configurer
	Wiring     = wiring.Wiring
)

// Collaborator types applications commonly touch.
type (
	Transport       = transport.Transport
	Capabilities    = transport.Capabilities
	BundleRegistry  = tlsconf.Registry
	Task            = scheduler.Task
	Scheduler       = scheduler.Scheduler
	MigrationRunner = migrate.Runner
	Observer        = metrics.Observer
	WiringLogger    = logging.WiringLogger
	LogFields       = logging.LogFields
)

// Constructors and helpers re-exported from the subpackages.
var (
	NewProperties = properties.New
	ParseDataSize = properties.ParseDataSize
	Load          = conf.Load

	NewContainer       = wiring.NewContainer
	Apply              = wiring.Apply
	DefaultConfigurers = wiring.Defaults

	NewBundleRegistry  = tlsconf.NewRegistry
	BuildTransport     = transport.Build
	GetCapabilities    = transport.GetCapabilities
	NewResourceHandler = web.NewResourceHandler
	NewScheduler       = scheduler.New
	NewMigrationRunner = migrate.NewRunner
	NewObserver        = metrics.NewObserver

	NewSlogLogger      = logging.NewSlogWiringLogger
	NewWatermillLogger = logging.NewWatermillWiringLogger
	NopLogger          = logging.Nop
)

// Container names of the default components.
const (
	ComponentMetricsHandler  = wiring.ComponentMetricsHandler
	ComponentTLSConfig       = wiring.ComponentTLSConfig
	ComponentTransport       = wiring.ComponentTransport
	ComponentWebResources    = wiring.ComponentWebResources
	ComponentBatchScheduler  = wiring.ComponentBatchScheduler
	ComponentMigrationRunner = wiring.ComponentMigrationRunner
)
