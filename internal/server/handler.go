package server

import (
	"net/http"

	"go.uber.org/fx"
)

// HttpHandler is a handler mounted on the mux under Name, which is
// any pattern accepted by http.ServeMux.
type HttpHandler struct {
	Name    string
	Handler http.Handler
}

// HttpHandlerResult adds a handler to the `handlers` value group.
type HttpHandlerResult struct {
	fx.Out

	Handler *HttpHandler `group:"handlers"`
}

func AsHttpHandler(
	name string,
	handler http.Handler,
) HttpHandlerResult {
	return HttpHandlerResult{
		Handler: &HttpHandler{
			Name:    name,
			Handler: handler,
		},
	}
}

// NewServeMux mounts the given handlers on a new mux.
func NewServeMux(handlers []*HttpHandler) *http.ServeMux {
	mux := http.NewServeMux()

	for _, handler := range handlers {
		mux.Handle(handler.Name, handler.Handler)
	}

	return mux
}
