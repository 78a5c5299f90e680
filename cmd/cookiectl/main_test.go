package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/rendercookie/core/cookie"
	"github.com/dmitrymomot/rendercookie/core/cookiebackend"
	"github.com/dmitrymomot/rendercookie/core/livecookie"
	"github.com/dmitrymomot/rendercookie/core/logger"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCodecCommands(t *testing.T) {
	t.Run("encode plain", func(t *testing.T) {
		assert.Equal(t, "{\"a\":\"a\"}\n", execute(t, "encode", `{"a":"a"}`, "--base64=false"))
	})

	t.Run("encode base64", func(t *testing.T) {
		assert.Equal(t, "eyJhIjoiYSJ9\n", execute(t, "encode", `{"a":"a"}`, "--base64=true"))
	})

	t.Run("decode base64", func(t *testing.T) {
		assert.JSONEq(t, `{"a":"a"}`, execute(t, "decode", "eyJhIjoiYSJ9", "--base64=true"))
	})

	t.Run("decode empty is null", func(t *testing.T) {
		assert.Equal(t, "null\n", execute(t, "decode", "", "--base64=false"))
	})

	t.Run("parse cookie header", func(t *testing.T) {
		out := execute(t, "parse", "a=1; b=x=y; ; =skip")
		assert.JSONEq(t, `[{"Name":"a","Value":"1"},{"Name":"b","Value":"x=y"}]`, out)
	})
}

func TestLiveURL(t *testing.T) {
	t.Parallel()

	got, err := liveURL("http://localhost:8080/page", "/live")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8080/live", got)

	got, err = liveURL("https://example.com/", "/live")
	require.NoError(t, err)
	assert.Equal(t, "wss://example.com/live", got)

	_, err = liveURL("ftp://example.com/", "/live")
	assert.Error(t, err)
}

func TestBrowse_Demo(t *testing.T) {
	t.Parallel()

	provider, err := cookiebackend.New(cookiebackend.DefaultConfig())
	require.NoError(t, err)

	codec := cookie.DefaultCodecOptions()
	d := demo{codec: codec, log: logger.Discard()}
	ts := httptest.NewServer(d.routes(provider))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	vm := livecookie.NewBrowserVM()
	visits := func() int {
		for _, c := range vm.Cookies() {
			if c.Name == visitsCookie {
				v, ok, err := cookie.Decode[int](c.Value, codec)
				require.NoError(t, err)
				require.True(t, ok)
				return v
			}
		}
		t.Fatal("visits cookie missing")
		return 0
	}

	require.NoError(t, browse(ctx, vm, ts.URL+"/", livePath))
	assert.Equal(t, 1, visits())

	byName := map[string]cookie.Cookie{}
	for _, c := range vm.Cookies() {
		byName[c.Name] = c
	}
	require.Contains(t, byName, sessionCookie)
	assert.True(t, byName[sessionCookie].HttpOnly, "session cookie came from Set-Cookie")
	require.Contains(t, byName, liveCookie, "live session wrote through document.cookie")

	sid := byName[sessionCookie].Value
	require.NoError(t, browse(ctx, vm, ts.URL+"/", ""))
	assert.Equal(t, 2, visits())

	for _, c := range vm.Cookies() {
		if c.Name == sessionCookie {
			assert.Equal(t, sid, c.Value, "existing session cookie is kept")
		}
	}
}

func TestDemo_Health(t *testing.T) {
	t.Parallel()

	provider, err := cookiebackend.New(cookiebackend.DefaultConfig())
	require.NoError(t, err)
	h := demo{codec: cookie.DefaultCodecOptions(), log: logger.Discard()}.routes(provider)

	for path, want := range map[string]string{"/health/live": "ALIVE", "/health/ready": "READY"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, 200, rec.Code, path)
		assert.Equal(t, want, rec.Body.String(), path)
	}
}

func TestCodecCommands_YAML(t *testing.T) {
	t.Cleanup(func() { outputFormat = "json" })

	out := execute(t, "decode", `{"a":"a","n":[1,2]}`, "--base64=false", "--output", "yaml")
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, map[string]any{"a": "a", "n": []any{1, 2}}, decoded)

	out = execute(t, "parse", "theme=dark", "-o", "yaml")
	var pairs []map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &pairs))
	assert.Equal(t, []map[string]string{{"name": "theme", "value": "dark"}}, pairs)
}

func TestPageView(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, pageView(3, `console.log("x")`).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<p>Visits: 3</p>")
	assert.Contains(t, buf.String(), `<script>console.log("x")</script>`)
}
