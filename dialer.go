package envproxy

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

// Dialer returns a golang.org/x/net/proxy Dialer for the decision.
//
// For NoProxy it returns forward, or proxy.Direct if forward is nil.
// Otherwise it delegates to proxy.FromURL, which knows "socks5" and
// "socks5h" out of the box and any scheme added with
// proxy.RegisterDialerType. Other schemes yield an error wrapping
// ErrUnsupportedScheme. No connection is made.
func (d Decision) Dialer(forward proxy.Dialer) (proxy.Dialer, error) {
	if forward == nil {
		forward = proxy.Direct
	}
	if d.url == nil {
		return forward, nil
	}
	dialer, err := proxy.FromURL(d.URL(), forward)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedScheme, d.url.Scheme, err)
	}
	return dialer, nil
}

// ProxyFunc returns a function suitable for http.Transport.Proxy that
// resolves each request's URL with r. A nil URL from the function means
// the request goes direct. The function never returns an error.
func (r *Resolver) ProxyFunc() func(*http.Request) (*url.URL, error) {
	return func(req *http.Request) (*url.URL, error) {
		if req == nil || req.URL == nil {
			return nil, nil
		}
		t, err := TargetFromURL(req.URL)
		if err != nil {
			r.logger.Warn("envproxy: ignoring request url", "url", req.URL.Redacted(), "error", err)
			return nil, nil
		}
		return r.ForURL(t).URL(), nil
	}
}
