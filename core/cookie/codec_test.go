package cookie_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rendercookie/core/cookie"
)

type payload struct {
	Data  string   `json:"data"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	values := []payload{
		{Data: "initial value"},
		{Data: "a=b; c", Count: 3, Tags: []string{"x", "y"}},
		{Data: `quotes " and \ slashes`, Count: -1},
		{Data: "unicode ✓ ünïcödé"},
	}

	for _, opts := range []cookie.CodecOptions{{Base64: false}, {Base64: true}} {
		for _, v := range values {
			wire, err := cookie.Encode(v, opts)
			require.NoError(t, err)

			got, ok, err := cookie.Decode[payload](wire, opts)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, v, got)
		}
	}
}

func TestCodec_Encode(t *testing.T) {
	t.Parallel()

	t.Run("plain json", func(t *testing.T) {
		wire, err := cookie.Encode(map[string]string{"a": "a"}, cookie.CodecOptions{})
		require.NoError(t, err)
		assert.Equal(t, `{"a":"a"}`, wire)
	})

	t.Run("base64 json", func(t *testing.T) {
		wire, err := cookie.Encode(map[string]string{"a": "a"}, cookie.CodecOptions{Base64: true})
		require.NoError(t, err)
		assert.Equal(t, base64.URLEncoding.EncodeToString([]byte(`{"a":"a"}`)), wire)
	})

	t.Run("nil encodes to empty", func(t *testing.T) {
		var p *payload
		wire, err := cookie.Encode(p, cookie.CodecOptions{Base64: true})
		require.NoError(t, err)
		assert.Equal(t, "", wire)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := cookie.Encode(make(chan int), cookie.CodecOptions{})
		assert.Error(t, err)
	})
}

func TestCodec_Decode(t *testing.T) {
	t.Parallel()

	t.Run("empty is absent", func(t *testing.T) {
		for _, wire := range []string{"", "   ", "\n"} {
			v, ok, err := cookie.Decode[payload](wire, cookie.CodecOptions{Base64: true})
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, payload{}, v)
		}
	})

	t.Run("null is absent", func(t *testing.T) {
		_, ok, err := cookie.Decode[*payload]("null", cookie.CodecOptions{})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, ok, err := cookie.Decode[payload]("{not json", cookie.CodecOptions{})
		require.Error(t, err)
		assert.False(t, ok)
		assert.ErrorIs(t, err, cookie.ErrDecode)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := cookie.Decode[payload]("***", cookie.CodecOptions{Base64: true})
		assert.ErrorIs(t, err, cookie.ErrDecode)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, _, err := cookie.Decode[payload](`"just a string"`, cookie.CodecOptions{})
		assert.ErrorIs(t, err, cookie.ErrDecode)
	})
}
