// Package container provides a named-bean container with singleton
// semantics, in the spirit of Spring's BeanFactory.
//
// # Overview
//
// A bean is described by a BeanDefinition, which points at a Blueprint: the
// type name plus the constructors able to build it. Definitions live in a
// DefinitionRegistry; built instances live in a SingletonCache; an
// InstantiationStrategy picks the constructor. The Container ties the three
// together.
//
// Go has no runtime constructor lookup, so constructors are registered
// explicitly as functions. The strategy picks one by arity only.
//
// # Registering
//
//	c := container.New()
//
//	c.RegisterBeanDefinition("userService", container.Define[*UserService](
//	    container.Ctor0(NewUserService),            // func() *UserService
//	    container.Ctor1(NewNamedUserService),       // func(string) *UserService
//	))
//
//	// Any Go function returning T or (T, error)
//	c.RegisterBeanDefinition("client", container.Define[*Client](
//	    container.Reflect(func(host string, port int) (*Client, error) { ... }),
//	))
//
//	// Pre-built value
//	c.RegisterSingleton("config", cfg)
//
// # Resolving
//
//	svc, err := c.GetBean("userService")            // zero-argument constructor
//	svc, err := c.GetBean("userService", "Alice")   // one-argument constructor
//
//	// Typed
//	svc, err := container.Resolve[*UserService](c, "userService")
//
// Resolution checks the singleton cache, then the registry, then builds and
// caches the bean. The first successful build wins for good: later calls
// return the same instance and ignore their arguments. A failed build is
// never cached, so the next call tries again.
//
// # Errors
//
// Every failure is a *BeanError. Match the kind with errors.Is:
//
//	ErrNotRegistered          no definition under that name
//	ErrNoSuitableConstructor  no constructor of the requested arity
//	ErrInstantiation          the constructor returned an error or panicked
//
// # Concurrency
//
// All methods are safe for concurrent use. By default concurrent first
// resolutions of one name share a single construction; WithSingleFlight(false)
// restores the plain race where each caller may build and the last store wins.
//
// # Service Providers
//
//	type UserProvider struct{ container.BaseProvider }
//
//	func (p *UserProvider) Register(app *container.Container) {
//	    app.RegisterBeanDefinition("userService", ...)
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&UserProvider{})
//	registry.Boot()
//
// A deferred provider (IsDeferred() == true) is only registered when one of
// the names in Provides() is first looked up.
package container
