package transform

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
)

// JSON is the default codec: bodies are serialized with sonic and tagged
// application/json.
type JSON struct{}

// Encode serializes v to JSON bytes. A nil body stays nil and a []byte body
// is assumed to be pre-encoded and passes through.
func (JSON) Encode(v any, header http.Header) (any, error) {
	header.Set("Content-Type", "application/json")

	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	default:
		data, err := sonic.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("JSON encoding error: %w", err)
		}
		return data, nil
	}
}

// Decode parses raw wire bytes into structured data. Values that are not
// []byte already went through a decode and pass through unchanged, so
// decoding twice is a no-op.
func (JSON) Decode(v any) (any, error) {
	data, ok := v.([]byte)
	if !ok {
		return v, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var out any
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("JSON parse error (payload looks like %s): %w", mimetype.Detect(data), err)
	}
	return out, nil
}
