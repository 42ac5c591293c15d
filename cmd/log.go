package cmd

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/lambdakit/eventlog"
)

var (
	logCmdDescription = `The log command writes a single event record to stdout, the
same way the reference handler records incoming requests. The
optional data argument is parsed as JSON.`
	logCmd = &cli.Command{
		Name:        "log",
		Usage:       "Write an event record.",
		Description: logCmdDescription,
		ArgsUsage:   "<event-type> [data]",
		Action:      logAction,
	}
)

func logAction(ctx *cli.Context) error {
	eventType := ctx.Args().Get(0)
	if eventType == "" {
		return errors.New("missing event type")
	}

	data, err := decodeValue(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	return eventlog.New(ctx.App.Writer).Log(eventType, data)
}

func init() {
	rootApp.Commands = append(rootApp.Commands, logCmd)
}
