package apiclient

import (
	"fmt"
	"net/http"

	"github.com/GriffinCanCode/apiclient/config"
	"github.com/GriffinCanCode/apiclient/envelope"
	"github.com/GriffinCanCode/apiclient/logging"
	"github.com/GriffinCanCode/apiclient/metrics"
	"github.com/GriffinCanCode/apiclient/transport"
)

// Client executes typed calls against one service. Construct one per
// application (or per test); the configuration is copied in and never
// mutated afterwards, so a Client is safe for concurrent use.
type Client struct {
	cfg    config.Config
	gw     *transport.Gateway
	log    *logging.Logger
	unwrap *envelope.Unwrapper
	rec    *metrics.Recorder
}

// Option customizes client construction.
type Option func(*options)

type options struct {
	logger    *logging.Logger
	transport http.RoundTripper
	recorder  *metrics.Recorder
}

// WithLogger replaces the logger built from the config.
func WithLogger(log *logging.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithTransport overrides the underlying round tripper, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithMetrics joins the recorder's hooks into the request lifecycle.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(o *options) { o.recorder = rec }
}

// New builds a client from the given configuration.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		var err error
		log, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			OutputPaths: []string{"stdout"},
		})
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
	}

	hooks := cfg.Hooks
	if o.recorder != nil {
		hooks = transport.JoinHooks(o.recorder.Hooks(), cfg.Hooks)
	}

	gw, err := transport.NewGateway(hooks, transport.Options{
		Timeout:   cfg.Timeout,
		Transport: o.transport,
		Logger:    log.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:    cfg,
		gw:     gw,
		log:    log,
		unwrap: envelope.NewUnwrapper(log.Logger),
		rec:    o.recorder,
	}, nil
}
