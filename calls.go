package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/GriffinCanCode/apiclient/config"
	"github.com/GriffinCanCode/apiclient/errs"
	"github.com/GriffinCanCode/apiclient/transform"
	"github.com/GriffinCanCode/apiclient/transport"
)

// CallOption adjusts a single call.
type CallOption func(*callOpts)

type callOpts struct {
	headers map[string]string
	codec   transform.Codec
	query   url.Values
}

// WithHeader adds one header to the call, above the configured defaults.
func WithHeader(key, value string) CallOption {
	return func(o *callOpts) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// WithHeaders adds a batch of headers to the call.
func WithHeaders(headers map[string]string) CallOption {
	return func(o *callOpts) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithCodec switches the call to a custom wire format, replacing any
// configured transforms for this call only.
func WithCodec(c transform.Codec) CallOption {
	return func(o *callOpts) { o.codec = c }
}

// WithQuery appends one query parameter.
func WithQuery(key, value string) CallOption {
	return func(o *callOpts) {
		if o.query == nil {
			o.query = make(url.Values)
		}
		o.query.Add(key, value)
	}
}

// Get fetches the unwrapped payload at path.
func (c *Client) Get(ctx context.Context, path string, opts ...CallOption) (any, error) {
	return c.do(ctx, http.MethodGet, path, nil, opts)
}

// Post sends body to path and returns the unwrapped payload.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...CallOption) (any, error) {
	return c.do(ctx, http.MethodPost, path, body, opts)
}

// Put replaces the resource at path with body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...CallOption) (any, error) {
	return c.do(ctx, http.MethodPut, path, body, opts)
}

// Patch partially updates the resource at path. The request goes out as a
// real PATCH.
func (c *Client) Patch(ctx context.Context, path string, body any, opts ...CallOption) (any, error) {
	return c.do(ctx, http.MethodPatch, path, body, opts)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string, opts ...CallOption) (any, error) {
	return c.do(ctx, http.MethodDelete, path, nil, opts)
}

// do runs the full pipeline: resolve, encode, execute, decode, unwrap.
func (c *Client) do(ctx context.Context, method, path string, body any, opts []CallOption) (any, error) {
	var co callOpts
	for _, opt := range opts {
		opt(&co)
	}

	resolved := c.cfg.Resolve(config.Call{Headers: co.headers, Codec: co.codec})

	wire := body
	if body != nil {
		stages := resolved.Requests
		if len(stages) == 0 {
			stages = []transform.RequestTransform{transform.JSON{}.Encode}
		}

		var err error
		if wire, err = transform.ApplyRequest(body, resolved.Header, stages); err != nil {
			return nil, c.gw.Fail(err)
		}
	}

	resp, err := c.gw.Do(ctx, &transport.Request{
		Method: method,
		URL:    c.cfg.URL(path),
		Header: resolved.Header,
		Query:  co.query,
		Body:   wire,
	})
	if err != nil {
		return nil, err
	}

	decoded, err := c.decode(resp.Body, resolved.Responses)
	if err != nil {
		return nil, c.countFailure(err)
	}

	payload, err := c.unwrap.Unwrap(decoded)
	if err != nil {
		return nil, c.countFailure(err)
	}
	return payload, nil
}

// countFailure feeds post-transport failures to the recorder. Transport
// failures are already counted by the gateway hooks.
func (c *Client) countFailure(err error) error {
	if c.rec != nil {
		c.rec.RecordFailure(err)
	}
	return err
}

// decode runs the response stages over the raw body. A reply that cannot be
// decoded is a validation failure: the server broke its contract, the
// transport did not.
func (c *Client) decode(body []byte, stages []transform.ResponseTransform) (any, error) {
	if len(stages) == 0 {
		stages = []transform.ResponseTransform{transform.JSON{}.Decode}
	}

	out, err := transform.ApplyResponse(body, stages)
	if err != nil {
		if errs.IsFieldErrors(err) {
			return nil, err
		}
		return nil, errs.NewFieldsError("body", err)
	}
	return out, nil
}
