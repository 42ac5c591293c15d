package lambda

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/lambdakit/handler"
	"github.com/lambda-feedback/lambdakit/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"lambda",
		// provide lambda config
		fx.Supply(config),
		// rename logger for module
		logging.DecorateLogger("lambda"),
		// provide handlers
		handler.Module(),
		// provide lambda function
		fx.Provide(NewLifecycleFunction),
		// invoke lambda function
		fx.Invoke(func(*Function) {}),
	)
}
