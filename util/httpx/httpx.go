// Package httpx owns the shared HTTP client the gateway uses to reach the
// backend. The two tiers sit next to each other, so dials are short and
// idle connections stay warm between proxied requests.
package httpx

import (
	"net"
	"net/http"
	"time"
)

var backendClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		// All traffic goes to the one backend host, so the per-host
		// limits match the pool size.
		MaxIdleConns:        64,
		MaxConnsPerHost:     64,
		MaxIdleConnsPerHost: 64,
		IdleConnTimeout:     2 * time.Minute,
	},
}

// Client returns the shared backend-facing client.
func Client() *http.Client { return backendClient }
