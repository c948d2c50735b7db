package container

import (
	"reflect"
	"sync"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related bean definitions. Providers are normally
// pointers; only pointer providers are de-duplicated by ProviderRegistry.
//
// Register() is where definitions go. Boot() is called after ALL providers
// have been registered, so it may resolve beans defined by other providers.
//
//	type UserProvider struct{ container.BaseProvider }
//
//	func (p *UserProvider) Register(app *container.Container) {
//	    app.RegisterBeanDefinition("userService",
//	        container.Define[*UserService](container.Ctor0(NewUserService)))
//	}
type ServiceProvider interface {
	// Register adds bean definitions to the container.
	// Do NOT resolve beans here; use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	Boot(app *Container)

	// Provides returns the bean names this provider defines.
	// Only consulted for deferred providers.
	Provides() []string

	// IsDeferred returns true if the provider should only be registered
	// when one of its Provides() names is first looked up.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot(), Provides() and
// IsDeferred(). Embed it and only override what you need.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred ones.
type ProviderRegistry struct {
	app *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	deferred   map[string]*deferredProvider // bean name → provider
	booted     bool
	registered map[ServiceProvider]bool // pointer providers only
}

// NewProviderRegistry creates a registry bound to app. Deferred providers
// are loaded the first time app misses a definition they provide.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	r := &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]*deferredProvider),
		registered: make(map[ServiceProvider]bool),
	}
	app.onMissingDefinition(r.loadDeferred)
	return r
}

// Register adds a provider and calls its Register() method (unless deferred).
// Registering the same pointer twice is a no-op. Non-pointer providers may
// not be hashable, so they are registered every time.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	r.mu.Lock()
	if isPointer(provider) {
		if r.registered[provider] {
			r.mu.Unlock()
			return
		}
		r.registered[provider] = true
	}

	if provider.IsDeferred() {
		d := &deferredProvider{provider: provider}
		for _, name := range provider.Provides() {
			r.deferred[name] = d
		}
		r.mu.Unlock()
		return
	}

	r.eager = append(r.eager, provider)
	booted := r.booted
	r.mu.Unlock()

	provider.Register(r.app)

	// Already booted: boot this one immediately
	if booted {
		provider.Boot(r.app)
	}
}

func isPointer(p ServiceProvider) bool {
	return reflect.ValueOf(p).Kind() == reflect.Pointer
}

// deferredProvider is loaded at most once, whichever of its names is
// looked up first. Concurrent lookups wait for the load to finish.
type deferredProvider struct {
	provider ServiceProvider
	once     sync.Once
	loaded   bool
}

// loadDeferred registers the deferred provider for name, if any.
func (r *ProviderRegistry) loadDeferred(name string) bool {
	r.mu.Lock()
	d, ok := r.deferred[name]
	r.mu.Unlock()
	if !ok {
		return false
	}

	d.once.Do(func() {
		d.provider.Register(r.app)
		r.mu.Lock()
		d.loaded = true
		booted := r.booted
		r.mu.Unlock()
		if booted {
			d.provider.Boot(r.app)
		}
	})
	return true
}

// Boot calls Boot() on all eager providers. Calling it again is a no-op.
func (r *ProviderRegistry) Boot() {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return
	}
	r.booted = true
	eager := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}

// Deferred returns the bean names still waiting on a deferred provider.
func (r *ProviderRegistry) Deferred() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending := make(map[string]bool, len(r.deferred))
	for name, d := range r.deferred {
		if !d.loaded {
			pending[name] = true
		}
	}
	return sortedKeys(pending)
}
