// Package transform implements the encode/decode stages applied to request
// and response bodies on their way through the client.
//
// A request stage sees the body and the outgoing headers, so codecs can set
// Content-Type or Content-Encoding alongside the payload they produce. A
// response stage sees only the body. Stages run in order; the first error
// aborts the chain.
//
// Decoding is idempotent: only raw wire bytes ([]byte) are parsed, anything
// already structured passes through unchanged.
package transform

import "net/http"

// RequestTransform rewrites an outgoing body. Stages may mutate header to
// describe the payload they emit.
type RequestTransform func(v any, header http.Header) (any, error)

// ResponseTransform rewrites an incoming body.
type ResponseTransform func(v any) (any, error)

// Codec pairs a request encoder with its matching response decoder.
type Codec interface {
	Encode(v any, header http.Header) (any, error)
	Decode(v any) (any, error)
}

// Stages expands a codec into one-element transform chains.
func Stages(c Codec) ([]RequestTransform, []ResponseTransform) {
	return []RequestTransform{c.Encode}, []ResponseTransform{c.Decode}
}

// ApplyRequest runs the request stages in order.
func ApplyRequest(v any, header http.Header, stages []RequestTransform) (any, error) {
	var err error
	for _, stage := range stages {
		if v, err = stage(v, header); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// ApplyResponse runs the response stages in order.
func ApplyResponse(v any, stages []ResponseTransform) (any, error) {
	var err error
	for _, stage := range stages {
		if v, err = stage(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}
