package app

import (
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/logging"
	"github.com/km-arc/go-beans/framework/providers"
	"github.com/km-arc/go-beans/framework/routing"
)

// Application is the top-level application container.
// It embeds the bean Container and a ProviderRegistry so user code can
// call app.RegisterBeanDefinition(), app.GetBean(), app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	cfg *config.Config
	log *zap.Logger
}

// New loads configuration from envFiles and bootstraps the application.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, logger), nil
}

// NewWithConfig bootstraps the application from an existing config and logger.
func NewWithConfig(cfg *config.Config, logger *zap.Logger) *Application {
	c := container.New(
		container.WithLogger(logger.Named("container")),
		container.WithSingleFlight(cfg.Container.SingleFlight),
	)
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
		cfg:       cfg,
		log:       logger,
	}

	registry.Register(&providers.ConfigServiceProvider{Config: cfg})
	registry.Register(&providers.LoggingServiceProvider{Logger: logger})
	registry.Register(&providers.RoutingServiceProvider{Logger: logger.Named("http")})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers and, when configured, builds
// every zero-argument bean up front.
func (a *Application) Boot() error {
	a.Providers.Boot()
	if !a.cfg.Container.PreInstantiate {
		return nil
	}
	if err := a.PreInstantiateSingletons(); err != nil {
		return errors.Wrap(err, "pre-instantiating singletons")
	}
	return nil
}

// Config returns the application configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.log }

// Router resolves the introspection router from the container.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, providers.RouterBean)
}

// Run boots the application (if needed) and, when HTTP is enabled, serves
// the bean introspection endpoint. It returns immediately otherwise.
func (a *Application) Run() error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}
	if !a.cfg.HTTP.Enabled {
		a.log.Info("http disabled, nothing to serve", zap.String("app", a.cfg.App.Name))
		return nil
	}

	router, err := a.Router()
	if err != nil {
		return err
	}
	addr := ":" + a.cfg.HTTP.Port
	a.log.Info("serving bean introspection",
		zap.String("app", a.cfg.App.Name),
		zap.String("addr", addr),
		zap.String("env", a.cfg.App.Env))
	if err := http.ListenAndServe(addr, router); err != nil {
		return errors.Wrap(err, "server error")
	}
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.cfg.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.cfg.App.Debug }
