package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/adscout/internal/fault"
)

func TestRobotsGuard_Allow(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		fetches++
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /explore/\n"))
	}))
	defer srv.Close()

	g := NewRobotsGuard(srv.Client(), "Mozilla/5.0 (X11; Linux x86_64)")
	ctx := context.Background()

	require.NoError(t, g.Allow(ctx, srv.URL+"/maria/"))

	err := g.Allow(ctx, srv.URL+"/explore/tags/cafe/")
	require.Error(t, err)
	assert.Equal(t, fault.KindNavigationTimeout, fault.KindOf(err))

	assert.Equal(t, 1, fetches, "robots.txt fetched once per host")
}

func TestRobotsGuard_MissingRobotsAllowsAll(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	g := NewRobotsGuard(srv.Client(), "adscout")
	assert.NoError(t, g.Allow(context.Background(), srv.URL+"/anything"))
}

func TestRobotsGuard_UnreachableAllowsAll(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewRobotsGuard(nil, "adscout")
	assert.NoError(t, g.Allow(context.Background(), url+"/x"))
}

func TestProductToken(t *testing.T) {
	assert.Equal(t, "Mozilla", ProductToken("Mozilla/5.0 (Windows NT 10.0)"))
	assert.Equal(t, "adscout", ProductToken("adscout"))
	assert.Equal(t, "*", ProductToken(""))
}

func TestProxyFunc(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)

	u, err := ProxyFunc("http://127.0.0.1:8080")(req)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", u.Host)

	client := HTTPClient(0, "http://127.0.0.1:8080")
	assert.NotNil(t, client.Transport)
}
