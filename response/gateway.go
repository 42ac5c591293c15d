package response

import (
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// APIGatewayProxyResponse converts the envelope to an API Gateway REST
// (v1) proxy response.
func (e Envelope) APIGatewayProxyResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: e.StatusCode,
		Headers:    copyHeaders(e.Headers),
		Body:       e.Body,
	}
}

// APIGatewayV2HTTPResponse converts the envelope to an API Gateway HTTP
// API (v2) response.
func (e Envelope) APIGatewayV2HTTPResponse() events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: e.StatusCode,
		Headers:    copyHeaders(e.Headers),
		Body:       e.Body,
	}
}

// ALBTargetGroupResponse converts the envelope to an Application Load
// Balancer target group response.
func (e Envelope) ALBTargetGroupResponse() events.ALBTargetGroupResponse {
	return events.ALBTargetGroupResponse{
		StatusCode:        e.StatusCode,
		StatusDescription: statusDescription(e.StatusCode),
		Headers:           copyHeaders(e.Headers),
		Body:              e.Body,
	}
}

// Write writes the envelope to an http.ResponseWriter.
func (e Envelope) Write(w http.ResponseWriter) error {
	header := w.Header()
	for k, v := range e.Headers {
		header.Set(k, v)
	}

	w.WriteHeader(e.StatusCode)

	_, err := io.WriteString(w, e.Body)
	return err
}

func statusDescription(code int) string {
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("%d %s", code, text)
	}

	return fmt.Sprintf("%d", code)
}

func copyHeaders(headers map[string]string) map[string]string {
	if headers == nil {
		return nil
	}

	copied := make(map[string]string, len(headers))
	for k, v := range headers {
		copied[k] = v
	}

	return copied
}
