// Package apiclient is a typed, validated HTTP request layer.
//
// The pipeline is organized into specialized packages:
//   - config: process-wide configuration (root path, headers, transforms)
//   - transform: request/response body stages (JSON, gzip, secretbox)
//   - transport: the shared gateway and its interceptor hooks
//   - envelope: response unwrapping ({code, data, message, timestamp})
//   - schema: payload validation at the trust boundary
//   - metrics: prometheus instrumentation fed by the hooks
//
// Built on go-resty/resty for the transport itself: connection pooling,
// context-based cancellation, and an always-on cookie jar so every request
// carries credentials.
//
// Every call resolves its configuration, encodes the body through the
// transform stages, executes on the gateway, decodes the reply, and routes
// it through the envelope policy. Failures are typed: ProtocolError when the
// server's envelope says so, TransportError when the exchange itself broke,
// and FieldErrors when a payload failed validation.
//
// Example Usage:
//
//	cfg := config.Default()
//	cfg.RootPath = "https://svc.example.com/api"
//	client, err := apiclient.New(cfg)
//	if err != nil {
//		return err
//	}
//	item, err := apiclient.Get[Item](ctx, client, "/items/1")
package apiclient
