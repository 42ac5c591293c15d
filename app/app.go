package app

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/lambda-feedback/lambdakit/config"
	"github.com/lambda-feedback/lambdakit/eventlog"
	"github.com/lambda-feedback/lambdakit/internal/shell"
	"github.com/lambda-feedback/lambdakit/util/conf"
	"github.com/lambda-feedback/lambdakit/util/logging"
)

// New creates the shell for the host binary from the logger and config
// stored in the cli context.
func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	return shell.New(log, SharedModule(config)), nil
}

// SharedModule provides the global config and the event logger.
func SharedModule(cfg config.Config) fx.Option {
	return fx.Module(
		"shared",
		// provide global config
		fx.Supply(cfg),
		// provide event logger writing to stdout
		fx.Provide(fx.Annotate(eventlog.NewStdout, fx.As(new(eventlog.Emitter)))),
	)
}
