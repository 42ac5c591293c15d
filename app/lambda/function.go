package lambda

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/lambdakit/internal/server"
)

// proxies builds, per event source, the function translating lambda
// events into requests for an http.Handler.
var proxies = map[ProxySource]func(http.Handler) any{
	ProxySourceApiGatewayV1: func(h http.Handler) any {
		return httpadapter.New(h).ProxyWithContext
	},
	ProxySourceApiGatewayV2: func(h http.Handler) any {
		return httpadapter.NewV2(h).ProxyWithContext
	},
	ProxySourceAlb: func(h http.Handler) any {
		return httpadapter.NewALB(h).ProxyWithContext
	},
}

type FunctionParams struct {
	fx.In

	Config Config

	// Handlers are the routes served for every invocation.
	Handlers []*server.HttpHandler `group:"handlers"`

	Context context.Context
	Logger  *zap.Logger
}

// Function serves the registered routes as an AWS Lambda function.
type Function struct {
	source  ProxySource
	handler http.Handler
	ctx     context.Context
	cancel  context.CancelFunc
	log     *zap.Logger
}

func NewFunction(params FunctionParams) *Function {
	ctx, cancel := context.WithCancel(params.Context)

	return &Function{
		source:  params.Config.ProxySource,
		handler: logInvocation(server.NewServeMux(params.Handlers), params.Logger),
		ctx:     ctx,
		cancel:  cancel,
		log:     params.Logger,
	}
}

// NewLifecycleFunction creates a Function that is started and stopped
// with the fx application.
func NewLifecycleFunction(params FunctionParams, lc fx.Lifecycle) *Function {
	fn := NewFunction(params)
	lc.Append(fx.StartStopHook(fn.Start, fn.Stop))
	return fn
}

// Proxy returns the lambda handler for the configured event source.
func (f *Function) Proxy() (any, error) {
	build, ok := proxies[f.source]
	if !ok {
		return nil, fmt.Errorf("invalid proxy source: %s", f.source)
	}

	return build(f.handler), nil
}

// Start runs the lambda runtime client in the background.
func (f *Function) Start() error {
	proxy, err := f.Proxy()
	if err != nil {
		return err
	}

	f.log.Debug("starting lambda runtime client", zap.Stringer("proxy_source", f.source))

	go lambda.StartWithOptions(proxy,
		lambda.WithContext(f.ctx),
		lambda.WithEnableSIGTERM(func() {
			f.log.Info("received SIGTERM, shutting down")
		}),
	)

	return nil
}

// Stop cancels the context passed to invocations.
func (f *Function) Stop() {
	f.cancel()
}

// logInvocation tags every request with the invocation's aws request id.
func logInvocation(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		}
		if lc, ok := lambdacontext.FromContext(r.Context()); ok {
			fields = append(fields, zap.String("aws_request_id", lc.AwsRequestID))
		}

		log.Debug("invocation", fields...)

		next.ServeHTTP(w, r)
	})
}
