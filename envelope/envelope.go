// Package envelope interprets the response wrapper all server replies are
// expected to use: {code, data, message, timestamp}.
//
// Code 200, or no code at all, signals success and yields the data payload,
// or boolean true for endpoints that reply without one. Any other code is a
// protocol failure. Code 500 is the one case that also logs before failing.
package envelope

import (
	"fmt"
	"math"
	"net/http"

	"github.com/GriffinCanCode/apiclient/errs"
	"go.uber.org/zap"
)

const successCode = http.StatusOK

// Envelope is the decoded response wrapper. Code is a pointer because an
// absent code and code 200 mean different things to From even though both
// unwrap as success.
type Envelope struct {
	Code      *int   `json:"code,omitempty"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// From reads an envelope out of a decoded response body. The body must be a
// JSON object and its code, when present, an integral number; anything else
// is a validation failure, not a protocol one.
func From(v any) (*Envelope, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errs.NewFieldsError("body", fmt.Errorf("expected envelope object, got %T", v))
	}

	env := &Envelope{}

	if raw, ok := m["code"]; ok && raw != nil {
		code, err := intCode(raw)
		if err != nil {
			return nil, errs.NewFieldsError("code", err)
		}
		env.Code = &code
	}
	env.Data = m["data"]
	if msg, ok := m["message"].(string); ok {
		env.Message = msg
	}
	if ts, ok := m["timestamp"].(string); ok {
		env.Timestamp = ts
	}

	return env, nil
}

// Unwrapper applies the success/failure policy. All call wrappers route
// their transport result through here before returning to application code.
type Unwrapper struct {
	log *zap.Logger
}

// NewUnwrapper builds an unwrapper. A nil logger disables the 500 log line.
func NewUnwrapper(log *zap.Logger) *Unwrapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Unwrapper{log: log}
}

// Unwrap reads the envelope out of a decoded body and extracts its payload.
func (u *Unwrapper) Unwrap(v any) (any, error) {
	env, err := From(v)
	if err != nil {
		return nil, err
	}
	return u.UnwrapEnvelope(env)
}

// UnwrapEnvelope extracts the payload from an already-parsed envelope.
func (u *Unwrapper) UnwrapEnvelope(env *Envelope) (any, error) {
	if env.Code != nil && *env.Code != successCode {
		if *env.Code == http.StatusInternalServerError {
			u.log.Error("server reported internal error",
				zap.Int("code", *env.Code),
				zap.String("message", env.Message),
			)
		}
		return nil, &errs.ProtocolError{Code: *env.Code, Message: env.Message}
	}

	if env.Data != nil {
		return env.Data, nil
	}
	return true, nil
}

func intCode(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("code %v is not an integer", n)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("code has type %T, want integer", v)
	}
}
