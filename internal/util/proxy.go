package util

import (
	"net/http"
	"net/url"
	"time"
)

// ProxyFunc routes requests through proxyURL, or through the environment's
// proxy settings when proxyURL is empty or invalid
func ProxyFunc(proxyURL string) func(*http.Request) (*url.URL, error) {
	if proxyURL == "" {
		return http.ProxyFromEnvironment
	}
	u, err := url.Parse(proxyURL)
	if err != nil || u.Host == "" {
		return http.ProxyFromEnvironment
	}
	return http.ProxyURL(u)
}

// HTTPClient returns a client for side requests (robots.txt, LLM) that
// share the browser's proxy
func HTTPClient(timeout time.Duration, proxyURL string) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = ProxyFunc(proxyURL)
	return &http.Client{Timeout: timeout, Transport: transport}
}
