package prerender_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rendercookie/core/cookie"
	"github.com/dmitrymomot/rendercookie/core/prerender"
)

func TestParseCookieHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []prerender.Pair
	}{
		{name: "empty", raw: "", want: nil},
		{name: "blank", raw: "   ", want: nil},
		{name: "single", raw: "a=1", want: []prerender.Pair{{Name: "a", Value: "1"}}},
		{
			name: "standard separator",
			raw:  "a=1; b=2",
			want: []prerender.Pair{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
		},
		{
			name: "first equals only",
			raw:  "k=a=b=c",
			want: []prerender.Pair{{Name: "k", Value: "a=b=c"}},
		},
		{
			name: "empty value",
			raw:  "a=; b",
			want: []prerender.Pair{{Name: "a", Value: ""}, {Name: "b", Value: ""}},
		},
		{
			name: "skips empty segments and names",
			raw:  "a=1;; =x; b=2;",
			want: []prerender.Pair{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prerender.ParseCookieHeader(tt.raw))
		})
	}
}

func TestCollection(t *testing.T) {
	t.Parallel()

	t.Run("get and remove", func(t *testing.T) {
		c := prerender.NewCollection(prerender.ParseCookieHeader("a=1; b=2")...)
		require.Equal(t, 2, c.Len())

		got, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, cookie.Cookie{Name: "a", Value: "1"}, got)

		_, ok = c.Get("A")
		assert.False(t, ok, "lookup is case-sensitive")

		c.Remove("a")
		assert.False(t, c.Has("a"))
		assert.Equal(t, 1, c.Len())

		c.Remove("missing")
		assert.Equal(t, 1, c.Len())
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		c := prerender.NewCollection(
			prerender.Pair{Name: "a", Value: "first"},
			prerender.Pair{Name: "a", Value: "second"},
		)
		got, _ := c.Get("a")
		assert.Equal(t, "first", got.Value)
	})

	t.Run("all is a snapshot", func(t *testing.T) {
		c := prerender.NewCollection(prerender.ParseCookieHeader("b=2; a=1")...)
		all := c.All()
		assert.ElementsMatch(t, []cookie.Cookie{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, all)

		c.Remove("a")
		assert.Len(t, all, 2)
	})

	t.Run("from request", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Add("Cookie", "a=1; token=x=y")
		r.Header.Add("Cookie", "b=2")

		c := prerender.CollectionFromRequest(r)
		assert.Equal(t, 3, c.Len())
		got, _ := c.Get("token")
		assert.Equal(t, "x=y", got.Value)
	})
}
