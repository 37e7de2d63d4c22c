package envproxy

import (
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
)

// Target describes the URL a connection is about to be made to.
type Target struct {
	// Scheme is the URL scheme, e.g. "http" or "https". It selects the
	// <scheme>_proxy variable.
	Scheme string

	// Host is a domain name or an IP literal. IPv6 literals may be given
	// with or without brackets.
	Host string

	// Port is the destination port. Zero means the scheme's default.
	Port int
}

// schemePorts lists the default ports of schemes commonly seen with
// proxy variables.
var schemePorts = map[string]int{
	"http":    80,
	"https":   443,
	"ftp":     21,
	"ws":      80,
	"wss":     443,
	"socks":   1080,
	"socks4":  1080,
	"socks4a": 1080,
	"socks5":  1080,
	"socks5h": 1080,
}

// TargetFromURL extracts the scheme, host and port of u.
func TargetFromURL(u *url.URL) (Target, error) {
	if u == nil {
		return Target{}, fmt.Errorf("%w: nil url", ErrInvalidTarget)
	}
	t := Target{
		Scheme: u.Scheme,
		Host:   u.Hostname(),
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port < 1 || port > maxPort {
			return Target{}, fmt.Errorf("%w: bad port %q", ErrInvalidTarget, p)
		}
		t.Port = port
	}
	if err := t.validate(); err != nil {
		return Target{}, err
	}
	return t, nil
}

// EffectivePort returns Port, or the scheme's default when Port is zero.
// It returns 0 if the scheme has no known default.
func (t Target) EffectivePort() int {
	if t.Port != 0 {
		return t.Port
	}
	return schemePorts[strings.ToLower(t.Scheme)]
}

func (t Target) validate() error {
	if t.Scheme == "" {
		return fmt.Errorf("%w: empty scheme", ErrInvalidTarget)
	}
	if t.Host == "" {
		return fmt.Errorf("%w: empty host", ErrInvalidTarget)
	}
	// A colon or bracket is only valid in an IPv6 literal; "host:port"
	// belongs in Port.
	if strings.ContainsAny(t.Host, ":[]") {
		h := t.Host
		if strings.HasPrefix(h, "[") && strings.HasSuffix(h, "]") {
			h = h[1 : len(h)-1]
		}
		if _, err := netip.ParseAddr(h); err != nil {
			return fmt.Errorf("%w: host %q is not a hostname or IP literal", ErrInvalidTarget, t.Host)
		}
	}
	if t.Port < 0 || t.Port > maxPort {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidTarget, t.Port)
	}
	return nil
}

func (t Target) String() string {
	host := t.Host
	if !strings.HasPrefix(host, "[") {
		if addr, err := netip.ParseAddr(host); err == nil && addr.Is6() {
			host = "[" + host + "]"
		}
	}
	if t.Port != 0 {
		host += ":" + strconv.Itoa(t.Port)
	}
	return t.Scheme + "://" + host
}
