// Package httpserver builds the process's HTTP listener. Handler-level
// timeouts are enforced by middleware; the limits here only guard the
// connection itself.
package httpserver

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	// idleTimeout reaps keep-alive connections abandoned by landlord
	// dashboards that poll the onboarding endpoints.
	idleTimeout = 60 * time.Second
)

// New builds the server serving the household API.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
}
