// Package services holds the demo beans wired up by main.
package services

import (
	"fmt"

	"github.com/km-arc/go-beans/framework/container"
)

// UserService is the sample bean used by the demo application.
type UserService struct {
	name string
}

// NewUserService is the zero-argument constructor.
func NewUserService() *UserService {
	return &UserService{name: "anonymous"}
}

// NewNamedUserService builds a UserService for a display name.
func NewNamedUserService(name string) *UserService {
	return &UserService{name: name}
}

// Name returns the display name the service was built with.
func (s *UserService) Name() string { return s.name }

// QueryUserInfo returns a description of the current user.
func (s *UserService) QueryUserInfo() string {
	return fmt.Sprintf("querying user info: %s", s.name)
}

// UserServiceDefinition describes UserService with both constructors.
func UserServiceDefinition() *container.BeanDefinition {
	return container.Define[*UserService](
		container.Ctor0(NewUserService),
		container.Ctor1(NewNamedUserService),
	)
}

// Provider registers "userService".
type Provider struct {
	container.BaseProvider
}

func (p *Provider) Register(app *container.Container) {
	app.RegisterBeanDefinition("userService", UserServiceDefinition())
}
