package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/app/services"
	"github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/container"
)

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log := application.Logger()
	defer func() { _ = log.Sync() }()

	application.Register(&services.Provider{})

	// Built on first use, then shared
	first, err := container.Resolve[*services.UserService](application.Container, "userService", "Alice")
	if err != nil {
		log.Fatal("resolving userService", zap.Error(err))
	}
	log.Info(first.QueryUserInfo())

	// Args are ignored now: the singleton already exists
	second, err := container.Resolve[*services.UserService](application.Container, "userService", "Bob")
	if err != nil {
		log.Fatal("resolving userService", zap.Error(err))
	}
	log.Info(second.QueryUserInfo(), zap.Bool("same_instance", first == second))

	if err := application.Run(); err != nil {
		log.Fatal("run", zap.Error(err))
	}
}
