package transform

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/gzip"
)

// Gzip compresses JSON bodies on the wire. Level follows gzip semantics;
// zero means gzip.DefaultCompression.
type Gzip struct {
	Level int
}

func (g Gzip) Encode(v any, header http.Header) (any, error) {
	encoded, err := JSON{}.Encode(v, header)
	if err != nil {
		return nil, err
	}
	if encoded == nil {
		return nil, nil
	}

	level := g.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}

	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("gzip level %d: %w", level, err)
	}
	if _, err := w.Write(encoded.([]byte)); err != nil {
		return nil, fmt.Errorf("gzip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip close: %w", err)
	}

	header.Set("Content-Encoding", "gzip")
	return buf.Bytes(), nil
}

func (g Gzip) Decode(v any) (any, error) {
	data, ok := v.([]byte)
	if !ok {
		return v, nil
	}

	// Bodies without the gzip magic bytes arrive uncompressed.
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip failed: %w", err)
		}
		defer r.Close()

		if data, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("gzip read: %w", err)
		}
	}

	return JSON{}.Decode(data)
}
