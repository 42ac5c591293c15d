package handler

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/lambda-feedback/lambdakit/internal/server"
)

var sentryHandler = sentryhttp.New(sentryhttp.Options{
	Repanic: true,
})

// withSentry attaches a request scoped sentry hub to the request context.
func withSentry(handler http.Handler) http.Handler {
	return sentryHandler.Handle(handler)
}

func NewRootRoute(handler *IntakeHandler) server.HttpHandlerResult {
	return server.AsHttpHandler("/{$}", withSentry(handler))
}

func NewEventRoute(handler *IntakeHandler) server.HttpHandlerResult {
	return server.AsHttpHandler("/{"+PathValueEvent+"}", withSentry(handler))
}

// NewHealthRoute only answers GET, so other methods on /health reach the
// event route.
func NewHealthRoute() server.HttpHandlerResult {
	return server.AsHttpHandler("GET /health", http.HandlerFunc(HealthHandler))
}
