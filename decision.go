package envproxy

import (
	"net/url"
	"strconv"
)

// Decision is the outcome of resolving a target against the environment:
// either no proxy, or a proxy with a known host and port.
//
// The zero value is NoProxy.
type Decision struct {
	url    *url.URL
	raw    string
	source string
}

// NoProxy is the decision to connect directly. It is the zero Decision and
// must not be assigned to; test decisions with IsNone rather than comparing
// against it. The resolver returns a fresh zero value, never this variable.
var NoProxy = Decision{}

// IsNone reports whether the target should be reached without a proxy.
func (d Decision) IsNone() bool {
	return d.url == nil
}

// HostPort returns the proxy host and port. ok is false for NoProxy.
// IPv6 hosts are returned without brackets.
func (d Decision) HostPort() (host string, port int, ok bool) {
	if d.url == nil {
		return "", 0, false
	}
	// parseProxyValue always sets a numeric port.
	port, _ = strconv.Atoi(d.url.Port())
	return d.url.Hostname(), port, true
}

// URL returns a copy of the canonical proxy URL, or nil for NoProxy.
// The URL always carries an explicit port.
func (d Decision) URL() *url.URL {
	if d.url == nil {
		return nil
	}
	u := *d.url
	if d.url.User != nil {
		user := *d.url.User
		u.User = &user
	}
	return &u
}

// Raw returns the unmodified value of the variable the proxy was taken
// from, or "" for NoProxy.
func (d Decision) Raw() string {
	return d.raw
}

// Source returns the name of the environment variable the proxy was taken
// from, e.g. "https_proxy" or "ALL_PROXY", or "" for NoProxy.
func (d Decision) Source() string {
	return d.source
}

// String returns the proxy URL with any password redacted, or "none".
func (d Decision) String() string {
	if d.url == nil {
		return "none"
	}
	return d.url.Redacted()
}
