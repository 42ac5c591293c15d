package server

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/lambdakit/util/logging"
)

// Module serves the "handlers" group over HTTP for the lifetime of the app.
func Module(config HttpConfig) fx.Option {
	return fx.Module("http",
		fx.Supply(config),
		logging.DecorateLogger("http"),
		fx.Provide(NewLifecycleServer),
		fx.Invoke(logRoutes),
	)
}

type routesParams struct {
	fx.In

	Handlers []*HttpHandler `group:"handlers"`
	Logger   *zap.Logger
}

func logRoutes(_ *HttpServer, params routesParams) {
	for _, handler := range params.Handlers {
		params.Logger.Debug("registered route", zap.String("pattern", handler.Name))
	}
}
