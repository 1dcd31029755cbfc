// Package transport owns the single shared HTTP transport instance and its
// two interceptor chains, outbound and inbound.
//
// The gateway speaks in request and response descriptors. Bodies arrive
// already encoded (the transform pipeline runs upstream) and leave as raw
// bytes for the decode pipeline downstream. Credentials ride along on every
// request through the client cookie jar, which is always installed.
package transport

import (
	"net/http"
	"net/url"
	"time"
)

// Wire header names owned by the request layer.
const (
	HeaderRequestID = "X-Request-Id"
	HeaderEncrypted = "X-ENCRYPTED"
)

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Status error bodies are capped at this size to keep errors loggable.
const maxErrBodySize = 1024 * 4

// Request describes one outgoing call. Built per call and treated as
// immutable once handed to the gateway; hooks that want changes return a
// modified clone instead.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Query  url.Values
	Body   any
}

// Clone returns a deep copy suitable for hook substitution. The body is
// shared, headers and query are copied.
func (r *Request) Clone() *Request {
	out := *r
	out.Header = r.Header.Clone()
	if r.Query != nil {
		out.Query = make(url.Values, len(r.Query))
		for k, v := range r.Query {
			out.Query[k] = append([]string(nil), v...)
		}
	}
	return &out
}

// Response describes one completed exchange.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}
