package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/routing"
)

// Bean names bound by the framework providers.
const (
	ConfigBean = "config"
	LoggerBean = "logger"
	RouterBean = "router"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound beans:
//   - "config"  → *config.Config (pre-built singleton)
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	app.RegisterSingleton(ConfigBean, p.Config)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound beans:
//   - "logger"  → *zap.Logger (pre-built singleton)
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	app.RegisterSingleton(LoggerBean, p.Logger)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider defines the HTTP router serving bean introspection.
// It is deferred: nothing is registered until "router" is first resolved.
//
// Bound beans:
//   - "router"  → *routing.Router, with /beans mounted
type RoutingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *RoutingServiceProvider) IsDeferred() bool   { return true }
func (p *RoutingServiceProvider) Provides() []string { return []string{RouterBean} }

func (p *RoutingServiceProvider) Register(app *container.Container) {
	log := p.Logger
	app.RegisterBeanDefinition(RouterBean, container.Define[*routing.Router](
		container.Ctor0(func() *routing.Router {
			r := routing.New(log)
			gohttp.NewBeanHandler(app).Routes(r, "/beans")
			return r
		}),
	))
}
