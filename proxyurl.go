package envproxy

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
)

// parseProxyValue turns the value of a proxy variable into a canonical
// proxy URL with an explicit host and port.
//
// Accepted forms are "scheme://host:port", "host:port" and "host". A
// missing scheme means http. A missing port is replaced by defaultPort;
// the scheme's own default port is not used, so "http://proxy" resolves
// to port 8080 with the default configuration. If defaultPort is 0, a
// missing port is an error. Userinfo is preserved, path and query are
// dropped.
func parseProxyValue(raw string, defaultPort int) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidProxyURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		// url.Error repeats the raw value, which may carry credentials.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidProxyURL, err)
	}
	if u.Opaque != "" {
		return nil, fmt.Errorf("%w: opaque url", ErrInvalidProxyURL)
	}

	host := normalizeHost(u.Hostname())
	if host == "" {
		return nil, fmt.Errorf("%w: empty host", ErrInvalidProxyURL)
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		if addr.Zone() != "" {
			return nil, fmt.Errorf("%w: zoned address %q", ErrInvalidProxyURL, host)
		}
	} else if !validHostname(host) {
		return nil, fmt.Errorf("%w: invalid host %q", ErrInvalidProxyURL, host)
	}

	port := defaultPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port < 1 || port > maxPort {
			return nil, fmt.Errorf("%w: invalid port %q", ErrInvalidProxyURL, p)
		}
	}
	if port == 0 {
		return nil, fmt.Errorf("%w: missing port", ErrInvalidProxyURL)
	}

	return &url.URL{
		Scheme: u.Scheme,
		User:   u.User,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
	}, nil
}

// validHostname reports whether host, already normalized to lowercase
// ASCII, consists only of letters, digits, '-', '_' and dot-separated
// non-empty labels.
func validHostname(host string) bool {
	if len(host) > 253 {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			switch {
			case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
			default:
				return false
			}
		}
	}
	return true
}
