package cookie

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

var jsonNull = []byte("null")

// CodecOptions controls the wire form of typed cookie values.
type CodecOptions struct {
	// Base64 wraps the JSON text in URL-safe base64 so it survives
	// header transport. Raw JSON contains quotes that net/http refuses to send.
	Base64 bool
}

// Encode serializes v to its wire representation.
// A nil value encodes to an empty string.
func Encode[T any](v T, opts CodecOptions) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode cookie value: %w", err)
	}
	if bytes.Equal(data, jsonNull) {
		return "", nil
	}
	if opts.Base64 {
		return base64.URLEncoding.EncodeToString(data), nil
	}
	return string(data), nil
}

// Decode parses a wire value into T.
// Empty or blank input reports ok=false without an error.
func Decode[T any](wire string, opts CodecOptions) (v T, ok bool, err error) {
	wire = strings.TrimSpace(wire)
	if wire == "" {
		return v, false, nil
	}

	data := []byte(wire)
	if opts.Base64 {
		data, err = base64.URLEncoding.DecodeString(wire)
		if err != nil {
			return v, false, &DecodeError{Err: err}
		}
	}

	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return v, false, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, &DecodeError{Err: err}
	}
	return v, true, nil
}
