package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/lambdakit/internal/jsonenc"
	"github.com/lambda-feedback/lambdakit/response"
)

const (
	shapeEnvelope = "envelope"
	shapeApiGwV1  = "apigw-v1"
	shapeApiGwV2  = "apigw-v2"
	shapeAlb      = "alb"
)

var (
	formatCmdDescription = `The format command prints the response envelope for the given
status code, body and headers. The body is parsed as JSON and
serialized again, unless --raw is given, in which case it is
used verbatim.`
	formatCmd = &cli.Command{
		Name:        "format",
		Usage:       "Print a response envelope.",
		Description: formatCmdDescription,
		Action:      formatAction,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "status",
				Aliases: []string{"s"},
				Usage:   "the status code of the response.",
				Value:   200,
			},
			&cli.StringFlag{
				Name:    "body",
				Aliases: []string{"b"},
				Usage:   "the response body.",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "use the body as a plain string.",
			},
			&cli.StringSliceFlag{
				Name:    "header",
				Aliases: []string{"H"},
				Usage:   "a header to add to the response, as Name=value.",
			},
			&cli.StringFlag{
				Name:  "shape",
				Usage: "the output shape. Options: envelope, apigw-v1, apigw-v2, alb.",
				Value: shapeEnvelope,
			},
		},
	}
)

func formatAction(ctx *cli.Context) error {
	var body any = ctx.String("body")
	if !ctx.Bool("raw") {
		var err error
		if body, err = decodeValue(ctx.String("body")); err != nil {
			return err
		}
	}

	headers, err := parseHeaders(ctx.StringSlice("header"))
	if err != nil {
		return err
	}

	env, err := response.Format(ctx.Int("status"), body, headers)
	if err != nil {
		return err
	}

	var out any
	switch shape := ctx.String("shape"); shape {
	case shapeEnvelope:
		out = env
	case shapeApiGwV1:
		out = env.APIGatewayProxyResponse()
	case shapeApiGwV2:
		out = env.APIGatewayV2HTTPResponse()
	case shapeAlb:
		out = env.ALBTargetGroupResponse()
	default:
		return fmt.Errorf("invalid shape: %s", shape)
	}

	b, err := jsonenc.Marshal(out)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(ctx.App.Writer, string(b))
	return err
}

func init() {
	rootApp.Commands = append(rootApp.Commands, formatCmd)
}
