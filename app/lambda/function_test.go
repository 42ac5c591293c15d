package lambda_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lambda-feedback/lambdakit/app/lambda"
	"github.com/lambda-feedback/lambdakit/config"
	"github.com/lambda-feedback/lambdakit/eventlog"
	"github.com/lambda-feedback/lambdakit/handler"
	"github.com/lambda-feedback/lambdakit/internal/server"
)

type v1Proxy = func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type v2Proxy = func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

type albProxy = func(context.Context, events.ALBTargetGroupRequest) (events.ALBTargetGroupResponse, error)

func setupFunction(t *testing.T, source lambda.ProxySource, out *strings.Builder, log *zap.Logger) *lambda.Function {
	intake, err := handler.NewIntakeHandler(handler.IntakeHandlerParams{
		Config: config.Config{
			Intake: config.IntakeConfig{
				RequiredFields: []string{"id"},
				EventType:      config.DefaultEventType,
			},
		},
		Events: eventlog.New(out),
		Log:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	return lambda.NewFunction(lambda.FunctionParams{
		Config: lambda.Config{ProxySource: source},
		Handlers: []*server.HttpHandler{
			handler.NewRootRoute(intake).Handler,
			handler.NewEventRoute(intake).Handler,
		},
		Context: context.Background(),
		Logger:  log,
	})
}

func TestFunction_Proxy(t *testing.T) {
	tests := []struct {
		source lambda.ProxySource
		check  func(t *testing.T, proxy any)
	}{
		{lambda.ProxySourceApiGatewayV1, func(t *testing.T, proxy any) {
			assert.IsType(t, v1Proxy(nil), proxy)
		}},
		{lambda.ProxySourceApiGatewayV2, func(t *testing.T, proxy any) {
			assert.IsType(t, v2Proxy(nil), proxy)
		}},
		{lambda.ProxySourceAlb, func(t *testing.T, proxy any) {
			assert.IsType(t, albProxy(nil), proxy)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.source.String(), func(t *testing.T) {
			fn := setupFunction(t, tt.source, &strings.Builder{}, zaptest.NewLogger(t))

			proxy, err := fn.Proxy()
			require.NoError(t, err)
			tt.check(t, proxy)
		})
	}
}

func TestFunction_InvalidSource(t *testing.T) {
	fn := setupFunction(t, "SQS", &strings.Builder{}, zaptest.NewLogger(t))

	_, err := fn.Proxy()
	assert.ErrorContains(t, err, "invalid proxy source: SQS")
	assert.Error(t, fn.Start())
}

func TestFunction_ApiGatewayV1(t *testing.T) {
	var out strings.Builder
	fn := setupFunction(t, lambda.ProxySourceApiGatewayV1, &out, zaptest.NewLogger(t))

	proxy, err := fn.Proxy()
	require.NoError(t, err)

	res, err := proxy.(v1Proxy)(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/order_created",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"id": 42}`,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, res.StatusCode)

	var body handler.Accepted
	require.NoError(t, json.Unmarshal([]byte(res.Body), &body))
	assert.Equal(t, "order_created", body.EventType)

	assert.Contains(t, out.String(), `"event_type":"order_created","data":{"id":42}`)
}

func TestFunction_ApiGatewayV2_MissingFields(t *testing.T) {
	var out strings.Builder
	fn := setupFunction(t, lambda.ProxySourceApiGatewayV2, &out, zaptest.NewLogger(t))

	proxy, err := fn.Proxy()
	require.NoError(t, err)

	res, err := proxy.(v2Proxy)(context.Background(), events.APIGatewayV2HTTPRequest{
		RawPath: "/",
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			DomainName: "example.com",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: http.MethodPost,
				Path:   "/",
			},
		},
		Body: `{"name": "x"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, res.Body, `missing_fields`)
	assert.Empty(t, out.String())
}

func TestFunction_LogsAwsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fn := setupFunction(t, lambda.ProxySourceApiGatewayV1, &strings.Builder{}, zap.New(core))

	proxy, err := fn.Proxy()
	require.NoError(t, err)

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{
		AwsRequestID: "aws-req-1",
	})

	_, err = proxy.(v1Proxy)(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/",
		Body:       `{"id": 1}`,
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("invocation").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "aws-req-1", entries[0].ContextMap()["aws_request_id"])
	assert.Equal(t, "/", entries[0].ContextMap()["path"])
}
