package envproxy

import (
	"errors"
	"net"
	"net/netip"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// matcher is one parsed no_proxy entry.
type matcher interface {
	// match reports whether the target host (already normalized) and port
	// are covered by the entry. addr is valid only for IP literal hosts.
	// port is 0 when the target port is unknown.
	match(host string, addr netip.Addr, port int) bool
}

// allMatch is the "*" entry.
type allMatch struct{}

func (allMatch) match(string, netip.Addr, int) bool { return true }

// networkMatch is a CIDR entry or a bare IP treated as a /32 or /128.
type networkMatch struct {
	prefix netip.Prefix
	port   int
}

func (m networkMatch) match(_ string, addr netip.Addr, port int) bool {
	if !addr.IsValid() {
		return false
	}
	return m.prefix.Contains(addr) && portMatches(m.port, port)
}

// domainMatch is a domain suffix entry. suffix has no leading dot and
// matches itself as well as any subdomain.
type domainMatch struct {
	suffix string
	port   int
}

func (m domainMatch) match(host string, addr netip.Addr, port int) bool {
	if addr.IsValid() {
		return false
	}
	if host != m.suffix && !(len(host) > len(m.suffix) &&
		strings.HasSuffix(host, m.suffix) &&
		host[len(host)-len(m.suffix)-1] == '.') {
		return false
	}
	return portMatches(m.port, port)
}

// portMatches reports whether an entry port accepts the target port.
// Entries without a port accept everything; entries with a port never
// match a target whose port is unknown.
func portMatches(want, got int) bool {
	return want == 0 || want == got
}

var (
	errEmptyEntry   = errors.New("empty entry")
	errBadPort      = errors.New("bad port")
	errBadNetwork   = errors.New("bad network")
	errBadHostEntry = errors.New("bad host")
)

// parseNoProxy splits a no_proxy value on commas and whitespace and parses
// each entry. Empty entries and a lone "." are skipped silently. Entries
// that fail to parse are returned in bad and never match anything.
func parseNoProxy(value string) (matchers []matcher, bad []string) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, f := range fields {
		if f == "." {
			continue
		}
		m, err := parseNoProxyEntry(f)
		if err != nil {
			bad = append(bad, f)
			continue
		}
		matchers = append(matchers, m)
	}
	return matchers, bad
}

// parseNoProxyEntry parses a single trimmed no_proxy entry.
func parseNoProxyEntry(entry string) (matcher, error) {
	entry = strings.TrimSpace(entry)
	switch {
	case entry == "":
		return nil, errEmptyEntry
	case entry == "*":
		return allMatch{}, nil
	case strings.Contains(entry, "/"):
		p, err := netip.ParsePrefix(entry)
		if err != nil {
			return nil, errBadNetwork
		}
		return networkMatch{prefix: networkPrefix(p)}, nil
	}

	// Bare IPv4 or IPv6, possibly bracketed.
	if addr, err := netip.ParseAddr(strings.Trim(entry, "[]")); err == nil {
		return networkMatch{prefix: hostPrefix(addr)}, nil
	}

	host, port := entry, 0
	if h, p, err := net.SplitHostPort(entry); err == nil {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > maxPort {
			return nil, errBadPort
		}
		host, port = h, n
	} else if strings.Contains(entry, ":") {
		return nil, errBadHostEntry
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return networkMatch{prefix: hostPrefix(addr), port: port}, nil
	}

	// "*.example.com" and ".example.com" both mean "example.com".
	if strings.HasPrefix(host, "*.") {
		host = host[2:]
	} else {
		host = strings.TrimPrefix(host, ".")
	}
	host = normalizeHost(host)
	if host == "" || strings.ContainsAny(host, "*[]") {
		return nil, errBadHostEntry
	}
	return domainMatch{suffix: host, port: port}, nil
}

// hostPrefix returns the single-address network for addr.
func hostPrefix(addr netip.Addr) netip.Prefix {
	addr = addr.WithZone("").Unmap()
	return netip.PrefixFrom(addr, addr.BitLen())
}

// networkPrefix masks p and rewrites an IPv4-mapped IPv6 network such as
// ::ffff:10.0.0.0/104 to its IPv4 form, since target hosts are unmapped
// before matching.
func networkPrefix(p netip.Prefix) netip.Prefix {
	p = p.Masked()
	if a := p.Addr(); a.Is4In6() && p.Bits() >= 96 {
		return netip.PrefixFrom(a.Unmap(), p.Bits()-96)
	}
	return p
}

// normalizeHost lowercases host, strips IPv6 brackets and a trailing dot,
// and converts internationalized names to their ASCII form so that
// "bücher.example" and "xn--bcher-kva.example" compare equal.
func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		host = host[1 : len(host)-1]
	}
	host = strings.TrimSuffix(host, ".")
	if isASCII(host) {
		return strings.ToLower(host)
	}
	if a, err := idna.Lookup.ToASCII(host); err == nil {
		return a
	}
	return strings.ToLower(host)
}

// parseHostAddr returns the IP address of a normalized host, with IPv4
// mapped IPv6 addresses unmapped and zones removed.
func parseHostAddr(host string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.WithZone("").Unmap(), true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
