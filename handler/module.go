package handler

import "go.uber.org/fx"

// Module provides the intake handler and its routes.
func Module() fx.Option {
	return fx.Module("handler",
		fx.Provide(NewIntakeHandler),
		fx.Provide(NewRootRoute),
		fx.Provide(NewEventRoute),
		fx.Provide(NewHealthRoute),
	)
}
