package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/GriffinCanCode/apiclient/errs"
	"github.com/GriffinCanCode/apiclient/id"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Options configures the gateway's underlying client.
type Options struct {
	Timeout   time.Duration
	Transport http.RoundTripper // override for tests
	Logger    *zap.Logger
}

// Gateway wraps resty with the interceptor chains and the always-on cookie
// jar. Configured once at construction and safe for concurrent use.
type Gateway struct {
	client *resty.Client
	hooks  Hooks
}

// NewGateway builds the shared transport instance.
func NewGateway(hooks Hooks, opts Options) (*Gateway, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	client := resty.New().
		SetTimeout(timeout).
		SetCookieJar(jar).
		SetLogger(restyLogger{log.Sugar()}).
		SetHeader("User-Agent", "apiclient/1.0")

	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	}

	g := &Gateway{client: client, hooks: hooks}
	client.OnBeforeRequest(g.beforeRequest)
	client.OnAfterResponse(g.afterResponse)
	return g, nil
}

// Do executes one exchange. Failures of any flavor, network errors and
// non-2xx statuses alike, surface as a TransportError after the failure
// hooks have run.
func (g *Gateway) Do(ctx context.Context, req *Request) (*Response, error) {
	r := g.client.R().SetContext(ctx)

	for k, vals := range req.Header {
		for _, v := range vals {
			r.Header.Add(k, v)
		}
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		terr := asTransportError(err)
		g.observeFailure(terr)
		return nil, terr
	}

	out := &Response{
		Method:     req.Method,
		URL:        resp.Request.URL,
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Header:     resp.Header().Clone(),
		Body:       resp.Body(),
		Duration:   resp.Time(),
	}

	if g.hooks.OnResponseObserved != nil {
		g.hooks.OnResponseObserved(out)
	}
	return out, nil
}

// Fail routes a construction failure through the outbound failure path:
// prepare hook with no descriptor, then the error hook, then the failure is
// re-signaled as a TransportError.
func (g *Gateway) Fail(err error) error {
	if g.hooks.OnRequestPrepare != nil {
		g.hooks.OnRequestPrepare(nil)
	}
	terr := asTransportError(err)
	if g.hooks.OnError != nil {
		g.hooks.OnError(terr)
	}
	return terr
}

// beforeRequest stamps the request ID and runs the prepare hook, applying a
// substituted descriptor back onto the outgoing request.
func (g *Gateway) beforeRequest(_ *resty.Client, r *resty.Request) error {
	r.Header.Set(HeaderRequestID, id.NewRequestID().String())

	if g.hooks.OnRequestPrepare == nil {
		return nil
	}

	// The descriptor is a detached copy: mutating it changes nothing unless
	// the hook returns it as a substitution.
	desc := (&Request{
		Method: r.Method,
		URL:    r.URL,
		Header: r.Header,
		Query:  r.QueryParam,
		Body:   r.Body,
	}).Clone()
	if sub := g.hooks.OnRequestPrepare(desc); sub != nil {
		if sub.Method != "" {
			r.Method = sub.Method
		}
		if sub.URL != "" {
			r.URL = sub.URL
		}
		if sub.Header != nil {
			r.Header = sub.Header.Clone()
		}
		if sub.Query != nil {
			r.QueryParam = sub.Query
		}
		r.Body = sub.Body
	}
	return nil
}

// afterResponse classifies out-of-range statuses as transport failures
// before envelope inspection gets a chance to run.
func (g *Gateway) afterResponse(_ *resty.Client, resp *resty.Response) error {
	sc := resp.StatusCode()
	if sc >= http.StatusOK && sc < http.StatusMultipleChoices {
		return nil
	}

	body := resp.Body()
	if len(body) > maxErrBodySize {
		body = body[:maxErrBodySize]
	}
	return &errs.TransportError{
		StatusCode: sc,
		Body:       string(body),
		Err:        errs.ErrUnexpectedStatus,
	}
}

func (g *Gateway) observeFailure(err error) {
	if g.hooks.OnResponseObserved != nil {
		g.hooks.OnResponseObserved(nil)
	}
	if g.hooks.OnError != nil {
		g.hooks.OnError(err)
	}
}

func asTransportError(err error) *errs.TransportError {
	var terr *errs.TransportError
	if errors.As(err, &terr) {
		return terr
	}
	return &errs.TransportError{Err: err}
}

// restyLogger bridges resty's internal logging onto zap.
type restyLogger struct {
	log *zap.SugaredLogger
}

func (l restyLogger) Errorf(format string, v ...any) { l.log.Errorf(format, v...) }
func (l restyLogger) Warnf(format string, v ...any)  { l.log.Warnf(format, v...) }
func (l restyLogger) Debugf(format string, v ...any) { l.log.Debugf(format, v...) }
