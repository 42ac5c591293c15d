package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/lambdakit/app"
	"github.com/lambda-feedback/lambdakit/app/standalone"
	"github.com/lambda-feedback/lambdakit/config"
	"github.com/lambda-feedback/lambdakit/util/conf"
	"github.com/lambda-feedback/lambdakit/util/logging"
)

var (
	serveCmdDescription = `The serve command starts a http server and waits for events
to handle. This allows the reference handler to be executed
outside of AWS Lambda, e.g. for local development.

The command will launch the http server and blocks indefin-
itely, processing incoming http requests.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server and listen for events.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "localhost",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    8080,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := conf.Parse[standalone.Config](conf.ParseOptions{
		Defaults: conf.DefaultConfig{
			"host": "localhost",
			"port": 8080,
			"h2c":  false,
		},
		EnvPrefix: config.EnvPrefix,
		Log:       log,
		Cli:       ctx,
	})
	if err != nil {
		return err
	}

	log.Info("starting http server")

	return app.Run(ctx.Context, standalone.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
