package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lambda-feedback/lambdakit/config"
	"github.com/lambda-feedback/lambdakit/internal/shell"
	"github.com/lambda-feedback/lambdakit/util/conf"
	"github.com/lambda-feedback/lambdakit/util/logging"
)

var (
	appName  = "lambdakit"
	appUsage = `Helpers for serverless request handlers: response envelopes,
structured event logs and input validation, plus a reference
handler that can run on AWS Lambda or as a plain http server.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.PathFlag{
				Name:    "config",
				Usage:   "load configuration from a json or .env file.",
				EnvVars: []string{"CONFIG_FILE"},
			},
			// intake flags
			&cli.StringSliceFlag{
				Name:     "require",
				Usage:    "a field every request body must contain.",
				Aliases:  []string{"r"},
				Category: "intake",
				EnvVars:  []string{"REQUIRED_FIELDS"},
			},
			&cli.PathFlag{
				Name:     "schema",
				Usage:    "a JSON schema every request body must match.",
				Category: "intake",
				EnvVars:  []string{"REQUEST_SCHEMA"},
			},
			&cli.StringFlag{
				Name:     "event-type",
				Usage:    "the event type logged for requests that do not name one.",
				Category: "intake",
				EnvVars:  []string{"EVENT_TYPE"},
			},
			&cli.StringFlag{
				Name:     "api-key",
				Usage:    "require requests to carry this value in the api-key header.",
				Category: "intake",
				EnvVars:  []string{"API_KEY"},
			},
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, err := createLogger(ctx)
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			// parse config using defaults, file, env and flags
			cfg, err := conf.Parse[config.Config](conf.ParseOptions{
				Cli: ctx,
				CliMap: map[string]string{
					"require":    "intake.required_fields",
					"schema":     "intake.schema",
					"event-type": "intake.event_type",
					"api-key":    "auth.key",
				},
				Defaults:  config.DefaultConfig,
				EnvPrefix: config.EnvPrefix,
				FileName:  ctx.Path("config"),
				Log:       log,
			})
			if err != nil {
				return err
			}

			// inject the config into the cli context
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			_ = log.Sync()

			return nil
		},
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

var exitHooks []func()

// OnExit registers fn to run before Execute terminates the process.
func OnExit(fn func()) {
	exitHooks = append(exitHooks, fn)
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

func Execute(params ExecuteParams) {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	code := run(context.Background(), os.Args)

	for _, hook := range exitHooks {
		hook()
	}

	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	err := rootApp.RunContext(ctx, args)

	// if app exited without error, return
	if err == nil {
		return 0
	}

	// shell exit codes were already reported by the shell
	if !shell.IsExitError(err) {
		fmt.Fprintf(rootApp.ErrWriter, "exit error: %s\n", err.Error())
	}

	return shell.ExitCode(err)
}

func createLogger(ctx *cli.Context) (*zap.Logger, error) {
	level := getLogLevelFromCLI(ctx)
	format := getLogFormatFromCLI(ctx)

	var cfg zap.Config
	if format == config.LogFormatProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.InitialFields = map[string]any{
		"app": appName,
	}

	cfg.Level = level

	return cfg.Build()
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return config.LogFormatProduction
}

func getLogLevelFromCLI(ctx *cli.Context) zap.AtomicLevel {
	lvl := ctx.String("log-level")

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
