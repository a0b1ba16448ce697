// Package transport provides the request/response primitive the tool-call
// client depends on. The client only ever sees the Transport interface; the
// HTTP implementation lives alongside it so alternative transports can be
// injected in tests or embeddings.
package transport

import (
	"context"
	"net/http"
)

// Request describes a single outbound request: method, target URL, a
// JSON-encoded body, and any additional headers.
type Request struct {
	Method  string
	URL     string
	Body    []byte
	Headers map[string]string
}

// Response carries the raw outcome of a request. Body is fully read and the
// underlying connection released before the Response is returned.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Transport is the interface for issuing a single bounded request.
// Implementations must honor ctx cancellation and deadlines.
type Transport interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}
