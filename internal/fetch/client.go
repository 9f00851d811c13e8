package fetch

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds each network wait: a whole resolver request, and for
// the fetcher the connect, the response headers and every gap between body
// reads.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient returns a client with the given per-request timeout. The
// default redirect policy is kept so CDN redirects are followed.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: newTransport(timeout),
	}
}

// NewStreamingClient returns a client without a total deadline. Connect,
// TLS handshake and response headers are each bounded by timeout; the body
// is bounded per read by the Fetcher.
func NewStreamingClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Transport: newTransport(timeout)}
}

func newTransport(timeout time.Duration) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout
	transport.MaxIdleConnsPerHost = 64
	return transport
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
