package container_test

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

func valueDef(v string) *container.BeanDefinition {
	return container.Define[string](container.Ctor0(func() string { return v }))
}

type eagerProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
}

func (p *eagerProvider) Register(app *container.Container) {
	p.registerCalled = true
	app.RegisterBeanDefinition("eager-svc", valueDef("eager"))
}

func (p *eagerProvider) Boot(app *container.Container) {
	p.bootCalled = true
}

// deferredProvider is lazy: Register runs when one of its names is first resolved.
type deferredProvider struct {
	container.BaseProvider
	mu            sync.Mutex
	registerCalls int
	bootCalled    bool
}

func (p *deferredProvider) Register(app *container.Container) {
	p.mu.Lock()
	p.registerCalls++
	p.mu.Unlock()
	app.RegisterBeanDefinition("deferred-svc", valueDef("deferred-value"))
	app.RegisterBeanDefinition("deferred-other", valueDef("other-value"))
}

func (p *deferredProvider) Boot(app *container.Container) {
	p.bootCalled = true
}

func (p *deferredProvider) IsDeferred() bool { return true }
func (p *deferredProvider) Provides() []string {
	return []string{"deferred-svc", "deferred-other"}
}

func (p *deferredProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registerCalls
}

// cacheProvider is deferred and warms its own bean in Boot.
type cacheProvider struct {
	container.BaseProvider
	warmed any
	err    error
}

func (p *cacheProvider) Register(app *container.Container) {
	app.RegisterBeanDefinition("cache", valueDef("warm"))
}

func (p *cacheProvider) Boot(app *container.Container) {
	p.warmed, p.err = app.GetBean("cache")
}

func (p *cacheProvider) IsDeferred() bool   { return true }
func (p *cacheProvider) Provides() []string { return []string{"cache"} }

// valueProvider is a non-pointer provider whose type cannot be hashed.
type valueProvider struct {
	names []string
}

func (p valueProvider) Register(app *container.Container) {
	for _, n := range p.names {
		app.RegisterBeanDefinition(n, valueDef(n))
	}
}

func (p valueProvider) Boot(_ *container.Container) {}
func (p valueProvider) Provides() []string          { return p.names }
func (p valueProvider) IsDeferred() bool            { return false }

// multiProvider registers multiple beans.
type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(app *container.Container) {
	app.RegisterBeanDefinition("alpha", valueDef("α"))
	app.RegisterBeanDefinition("beta", valueDef("β"))
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_EagerProvider_RegisterCalled(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	reg.Register(p)

	assert.True(t, p.registerCalled, "Register() should be called immediately for eager providers")
	assert.True(t, c.ContainsBeanDefinition("eager-svc"))
	assert.False(t, c.ContainsSingleton("eager-svc"), "registering must not build the bean")
}

func TestRegistry_EagerProvider_BootCalledAfterBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	reg.Register(p)
	assert.False(t, p.bootCalled, "Boot() should NOT be called before registry.Boot()")

	reg.Boot()
	assert.True(t, p.bootCalled, "Boot() should be called after registry.Boot()")
}

func TestRegistry_EagerProvider_ServiceResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&eagerProvider{})
	reg.Boot()

	got, err := container.Resolve[string](c, "eager-svc")
	require.NoError(t, err)
	assert.Equal(t, "eager", got)
}

func TestRegistry_Boot_IdempotentCallsAreIgnored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&eagerProvider{})

	reg.Boot()
	reg.Boot()

	assert.True(t, reg.Booted())
}

func TestRegistry_Booted_FalseBeforeBoot(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	assert.False(t, reg.Booted())
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	reg.Register(p)
	reg.Register(p)

	assert.Len(t, reg.Providers(), 1)
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestRegistry_DeferredProvider_NotRegisteredEagerly(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	reg.Register(p)
	reg.Boot()

	assert.Zero(t, p.calls(), "deferred provider Register() should not be called until GetBean()")
	assert.False(t, c.ContainsBeanDefinition("deferred-svc"))
	assert.Equal(t, []string{"deferred-other", "deferred-svc"}, reg.Deferred())
}

func TestRegistry_DeferredProvider_RegisteredOnFirstGetBean(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	reg.Register(p)
	reg.Boot()

	got, err := container.Resolve[string](c, "deferred-svc")
	require.NoError(t, err)
	assert.Equal(t, "deferred-value", got)
	assert.True(t, p.bootCalled, "a provider loaded after Boot() is booted on load")

	other, err := container.Resolve[string](c, "deferred-other")
	require.NoError(t, err)
	assert.Equal(t, "other-value", other)

	assert.Equal(t, 1, p.calls())
	assert.Empty(t, reg.Deferred())
}

func TestRegistry_DeferredProvider_ConcurrentFirstLookups(t *testing.T) {
	c := container.New(container.WithSingleFlight(false))
	reg := container.NewProviderRegistry(c)
	p := &deferredProvider{}
	reg.Register(p)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		name := p.Provides()[i%2]
		go func() {
			defer wg.Done()
			_, err := c.GetBean(name)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, p.calls())
}

func TestRegistry_DeferredProvider_BootResolvesOwnBean(t *testing.T) {
	for _, singleFlight := range []bool{true, false} {
		c := container.New(container.WithSingleFlight(singleFlight))
		reg := container.NewProviderRegistry(c)
		reg.Boot()

		p := &cacheProvider{}
		reg.Register(p)

		var got any
		var err error
		done := make(chan struct{})
		go func() {
			defer close(done)
			got, err = c.GetBean("cache")
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("GetBean(cache) did not return (singleFlight=%v)", singleFlight)
		}
		require.NoError(t, err)
		require.NoError(t, p.err)
		assert.Equal(t, "warm", got)
		assert.Equal(t, "warm", p.warmed)
	}
}

func TestRegistry_UnknownNameStillNotRegistered(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&deferredProvider{})

	_, err := c.GetBean("unknown")
	assert.True(t, errors.Is(err, container.ErrNotRegistered))
}

func TestRegistry_ValueProviderDoesNotPanic(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	p := valueProvider{names: []string{"gamma"}}

	assert.NotPanics(t, func() {
		reg.Register(p)
		reg.Register(p)
	})

	got, err := container.Resolve[string](c, "gamma")
	require.NoError(t, err)
	assert.Equal(t, "gamma", got)
}

// ── Multiple providers ────────────────────────────────────────────────────────

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&multiProvider{})
	reg.Register(&eagerProvider{})
	reg.Boot()

	for name, want := range map[string]string{"alpha": "α", "beta": "β", "eager-svc": "eager"} {
		got, err := container.Resolve[string](c, name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

// ── Providers list ────────────────────────────────────────────────────────────

func TestRegistry_Providers_ReturnsEagerOnes(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&eagerProvider{})
	reg.Register(&deferredProvider{})

	assert.Len(t, reg.Providers(), 1, "deferred providers are not listed")
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	p.Boot(container.New())

	assert.False(t, p.IsDeferred())
	assert.Empty(t, p.Provides())
}

// ── Boot after registration (late provider) ───────────────────────────────────

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Boot()

	p := &eagerProvider{}
	reg.Register(p)

	assert.True(t, p.bootCalled, "provider registered after Boot() should be booted immediately")
}
