package container

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container resolves named beans: it owns a definition registry, a singleton
// cache and an instantiation strategy, and ties them together in GetBean.
//
// Every bean is a singleton. The first successful GetBean for a name builds
// the instance; every later call returns that same instance, whatever
// arguments it passes.
type Container struct {
	registry   DefinitionRegistry
	singletons *SingletonCache
	strategy   InstantiationStrategy
	log        *zap.Logger

	// collapses concurrent cache misses for one name; nil when disabled
	flight *singleflight.Group

	mu sync.RWMutex
	// consulted, in order, when a lookup misses the registry
	loaders []func(name string) bool
}

// Option configures a Container.
type Option func(*Container)

// WithRegistry replaces the default in-memory registry.
func WithRegistry(r DefinitionRegistry) Option {
	return func(c *Container) { c.registry = r }
}

// WithStrategy replaces the default ArityStrategy.
func WithStrategy(s InstantiationStrategy) Option {
	return func(c *Container) { c.strategy = s }
}

// WithLogger sets the logger used for debug output. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSingleFlight controls whether concurrent first resolutions of the same
// name share one construction (on by default). When off, racing callers may
// each build an instance and the last one stored wins.
func WithSingleFlight(on bool) Option {
	return func(c *Container) {
		if on {
			c.flight = new(singleflight.Group)
		} else {
			c.flight = nil
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		registry:   NewRegistry(),
		singletons: NewSingletonCache(),
		strategy:   ArityStrategy{},
		log:        zap.NewNop(),
		flight:     new(singleflight.Group),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// RegisterBeanDefinition stores def under name. A definition already
// registered under name is replaced. Nothing is built until GetBean.
//
//	c.RegisterBeanDefinition("userService",
//	    container.Define[*UserService](container.Ctor0(NewUserService)))
func (c *Container) RegisterBeanDefinition(name string, def *BeanDefinition) {
	if c.registry.Contains(name) {
		c.log.Debug("bean definition overwritten", zap.String("bean", name))
	} else {
		c.log.Debug("bean definition registered", zap.String("bean", name))
	}
	c.registry.Register(name, def)
}

// RegisterSingleton stores an already-built instance under name. GetBean
// returns it without consulting the registry.
//
//	c.RegisterSingleton("config", cfg)
func (c *Container) RegisterSingleton(name string, instance any) {
	c.singletons.Put(name, instance)
	c.log.Debug("singleton registered", zap.String("bean", name))
}

// ── Resolution ────────────────────────────────────────────────────────────────

// GetBean returns the singleton for name, building it on first use. With no
// args the zero-argument constructor is used; otherwise the first
// constructor whose arity equals len(args). Once built, args are ignored.
//
//	svc, err := c.GetBean("userService")
//	svc, err := c.GetBean("userService", "Alice")
func (c *Container) GetBean(name string, args ...any) (any, error) {
	return c.doGetBean(name, args)
}

func (c *Container) doGetBean(name string, args []any) (any, error) {
	if instance, ok := c.singletons.Get(name); ok {
		return instance, nil
	}

	// Lookup stays outside the flight: loading a deferred provider may boot
	// it, and Boot is free to resolve the very name being looked up.
	def, err := c.lookup(name)
	if err != nil {
		return nil, err
	}

	if c.flight == nil {
		return c.createBean(name, def, args)
	}

	v, err, _ := c.flight.Do(name, func() (any, error) {
		// a racing caller may have stored it between our miss and Do
		if instance, ok := c.singletons.Get(name); ok {
			return instance, nil
		}
		return c.createBean(name, def, args)
	})
	return v, err
}

// createBean runs instantiate → store. The cache is only written after a
// successful build.
func (c *Container) createBean(name string, def *BeanDefinition, args []any) (any, error) {
	instance, err := c.strategy.Instantiate(def, name, args)
	if err != nil {
		var be *BeanError
		if !errors.As(err, &be) {
			err = beanError(name, ErrInstantiation, err)
		}
		c.log.Debug("bean instantiation failed", zap.String("bean", name), zap.Error(err))
		return nil, err
	}

	c.singletons.Put(name, instance)
	c.log.Debug("singleton created",
		zap.String("bean", name),
		zap.String("type", fmt.Sprintf("%T", instance)),
		zap.Int("args", len(args)))
	return instance, nil
}

func (c *Container) lookup(name string) (*BeanDefinition, error) {
	def, err := c.registry.Lookup(name)
	if err == nil || !errors.Is(err, ErrNotRegistered) {
		return def, err
	}

	c.mu.RLock()
	loaders := c.loaders
	c.mu.RUnlock()

	for _, load := range loaders {
		if load(name) {
			return c.registry.Lookup(name)
		}
	}
	return nil, err
}

// onMissingDefinition adds a loader tried when name has no definition. A
// loader returns true once it has registered something for name.
func (c *Container) onMissingDefinition(load func(name string) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaders = append(c.loaders, load)
}

// PreInstantiateSingletons asks the strategy for a zero-argument build of
// every registered bean not built yet. Beans the strategy cannot build
// without arguments (ErrNoSuitableConstructor) are skipped; any other
// failure stops the walk and is returned.
func (c *Container) PreInstantiateSingletons() error {
	for _, name := range c.registry.Names() {
		if c.singletons.Contains(name) {
			continue
		}
		if _, err := c.GetBean(name); err != nil {
			if errors.Is(err, ErrNoSuitableConstructor) {
				continue
			}
			return err
		}
	}
	return nil
}

// ── Introspection ─────────────────────────────────────────────────────────────

// BeanDefinition returns the registered definition for name.
func (c *Container) BeanDefinition(name string) (*BeanDefinition, error) {
	return c.registry.Lookup(name)
}

// ContainsBeanDefinition reports whether name has a definition.
func (c *Container) ContainsBeanDefinition(name string) bool {
	return c.registry.Contains(name)
}

// ContainsSingleton reports whether name has been built (or registered as an
// instance).
func (c *Container) ContainsSingleton(name string) bool {
	return c.singletons.Contains(name)
}

// ContainsBean reports whether name has a definition or a singleton.
func (c *Container) ContainsBean(name string) bool {
	return c.ContainsBeanDefinition(name) || c.ContainsSingleton(name)
}

// BeanDefinitionNames returns all registered definition names, sorted.
func (c *Container) BeanDefinitionNames() []string {
	return c.registry.Names()
}

// SingletonNames returns the names of all built singletons, sorted.
func (c *Container) SingletonNames() []string {
	return c.singletons.Names()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls GetBean and type-asserts the result.
//
//	svc, err := container.Resolve[*UserService](c, "userService")
func Resolve[T any](c *Container, name string, args ...any) (T, error) {
	var zero T
	instance, err := c.GetBean(name, args...)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, beanError(name, ErrTypeMismatch,
			errors.Errorf("resolved to %T, want %s", instance, typeName[T]()))
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure. Meant for bootstrap
// code where a missing bean is a programming error.
func MustResolve[T any](c *Container, name string, args ...any) T {
	typed, err := Resolve[T](c, name, args...)
	if err != nil {
		panic(err)
	}
	return typed
}
