package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/lambdakit/config"
	"github.com/lambda-feedback/lambdakit/util/conf"
	"github.com/lambda-feedback/lambdakit/validate"
)

var (
	validateCmdDescription = `The validate command checks a JSON object, read from the given
file or from stdin, for the required fields and against the
JSON schema of the intake configuration (see the --require
and --schema flags of the root command).

The command prints "true" if the object is valid, and fails
with the list of problems otherwise.`
	validateCmd = &cli.Command{
		Name:        "validate",
		Usage:       "Validate a JSON object.",
		Description: validateCmdDescription,
		ArgsUsage:   "[file]",
		Action:      validateAction,
	}
)

func validateAction(ctx *cli.Context) error {
	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return err
	}

	data, err := readObject(ctx.Args().First(), ctx.App.Reader)
	if err != nil {
		return err
	}

	ok, err := validate.Required(data, cfg.Intake.RequiredFields)
	if err != nil {
		return err
	}

	if cfg.Intake.Schema != "" {
		schema, err := validate.LoadSchema(cfg.Intake.Schema)
		if err != nil {
			return err
		}

		if err := schema.Validate(data); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(ctx.App.Writer, ok)
	return err
}

func init() {
	rootApp.Commands = append(rootApp.Commands, validateCmd)
}
