package http

import (
	"net"
	"net/http"
	"time"
)

type TransportFunc func(http.RoundTripper) http.RoundTripper

type httpConfig struct {
	connClientTimeout   time.Duration
	clientKeepAlive     time.Duration
	tlsHandshakeTimeout time.Duration
	idleConnTimeout     time.Duration
	maxIdleConns        int
	maxIdleConnsPerHost int
	transports          []TransportFunc
}

// Model generation answers only after the whole completion is ready, so
// neither the request nor the response headers are bounded.
func defaultHTTPConfig() *httpConfig {
	return &httpConfig{
		connClientTimeout:   30 * time.Second,
		clientKeepAlive:     90 * time.Second,
		tlsHandshakeTimeout: 10 * time.Second,
		idleConnTimeout:     90 * time.Second,
		maxIdleConns:        100,
		maxIdleConnsPerHost: 10,
		transports:          []TransportFunc{},
	}
}

// NewTransport builds the decorated round tripper. It is meant to sit
// underneath another transport, e.g. an authenticating one.
func NewTransport(opts ...HttpOpts) http.RoundTripper {
	cfg := defaultHTTPConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return buildTransport(cfg)
}

func buildTransport(cfg *httpConfig) http.RoundTripper {
	dialer := net.Dialer{
		Timeout:   cfg.connClientTimeout,
		KeepAlive: cfg.clientKeepAlive,
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        cfg.maxIdleConns,
		MaxIdleConnsPerHost: cfg.maxIdleConnsPerHost,
		TLSHandshakeTimeout: cfg.tlsHandshakeTimeout,
		IdleConnTimeout:     cfg.idleConnTimeout,
	}

	for _, transportFunc := range cfg.transports {
		transport = transportFunc(transport)
	}

	return transport
}
