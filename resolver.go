package envproxy

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/zhangyunhao116/envproxy/internal/envutil"
)

// Resolver decides which proxy, if any, to use for a target by reading
// proxy variables through its Lookup.
//
// A Resolver holds no mutable state; every call re-reads the environment.
// It is safe for concurrent use as long as its Lookup is.
type Resolver struct {
	lookup      Lookup
	defaultPort int
	strictHTTP  bool
	logger      *slog.Logger
}

// New creates a Resolver from the given configuration.
// If cfg is nil, DefaultConfig is used.
func New(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lookup := cfg.Lookup
	if lookup == nil {
		lookup = ProcessEnv()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Resolver{
		lookup:      lookup,
		defaultPort: cfg.defaultPort(),
		strictHTTP:  cfg.StrictHTTPProxy,
		logger:      logger,
	}, nil
}

// ForURL determines the proxy for t.
//
// Variables may be spelled in lowercase or uppercase; when both are set
// to non-empty values the lowercase one wins. Empty variables count as
// unset.
//
// If no_proxy lists an entry covering t, the result is NoProxy. Entries are
// separated by commas or whitespace and may be:
//
//   - "*", which disables proxying for every target;
//   - a CIDR network such as "10.0.0.0/8" or "fc00::/7", or a single IP,
//     matched against IP literal hosts only;
//   - a domain name, matched case-insensitively against the host and all
//     of its subdomains. A leading "." or "*." is ignored, so
//     "example.org" and ".example.org" both cover "example.org" and
//     "a.example.org" but not "xample.org".
//
// IP and domain entries may carry a ":port" suffix restricting the match
// to that target port. Malformed entries are ignored.
//
// Otherwise the proxy comes from <scheme>_proxy (for example https_proxy
// for https targets), falling back to all_proxy. A value without a port
// gets the configured default port, 8080 unless changed.
//
// ForURL never fails: an invalid target or a malformed proxy value yields
// NoProxy, and the problem is logged.
func (r *Resolver) ForURL(t Target) Decision {
	if err := t.validate(); err != nil {
		r.logger.Warn("envproxy: ignoring target", "target", t.String(), "error", err)
		return Decision{}
	}

	if r.excluded(t) {
		if r.logger.Enabled(context.Background(), slog.LevelDebug) {
			r.logger.Debug("envproxy: target excluded by no_proxy", "target", t.String())
		}
		return Decision{}
	}

	raw, source, ok := r.proxyValue(strings.ToLower(t.Scheme))
	if !ok {
		return Decision{}
	}

	u, err := parseProxyValue(raw, r.defaultPort)
	if err != nil {
		r.logger.Warn("envproxy: ignoring malformed proxy variable", "var", source, "error", err)
		return Decision{}
	}

	d := Decision{url: u, raw: raw, source: source}
	if r.logger.Enabled(context.Background(), slog.LevelDebug) {
		r.logger.Debug("envproxy: proxy selected", "target", t.String(), "var", source, "proxy", d.String())
	}
	return d
}

// ForURLString parses rawURL and determines its proxy with ForURL.
// A URL that cannot be parsed, or that lacks a scheme or host, yields
// NoProxy.
func (r *Resolver) ForURLString(rawURL string) Decision {
	u, err := url.Parse(rawURL)
	if err != nil {
		r.logger.Warn("envproxy: cannot parse target url", "error", err)
		return Decision{}
	}
	t, err := TargetFromURL(u)
	if err != nil {
		r.logger.Warn("envproxy: ignoring target", "target", u.Redacted(), "error", err)
		return Decision{}
	}
	return r.ForURL(t)
}

// excluded reports whether no_proxy covers t.
func (r *Resolver) excluded(t Target) bool {
	lower, upper := envutil.ProxyVarNames("no")
	value, source, ok := r.getPair(lower, upper)
	if !ok {
		return false
	}

	matchers, bad := parseNoProxy(value)
	if len(bad) > 0 {
		r.logger.Warn("envproxy: ignoring malformed no_proxy entries", "var", source, "entries", bad)
	}

	host := normalizeHost(t.Host)
	addr, _ := parseHostAddr(host)
	port := t.EffectivePort()
	for _, m := range matchers {
		if m.match(host, addr, port) {
			return true
		}
	}
	return false
}

// proxyValue returns the proxy variable value for scheme, falling back to
// all_proxy.
func (r *Resolver) proxyValue(scheme string) (value, source string, ok bool) {
	lower, upper := envutil.ProxyVarNames(scheme)
	if scheme == "http" && r.strictHTTP {
		upper = ""
	}
	if value, source, ok = r.getPair(lower, upper); ok {
		return value, source, true
	}
	lower, upper = envutil.ProxyVarNames("all")
	return r.getPair(lower, upper)
}

// getPair looks up lower, then upper, returning the first non-empty value
// and the name it was found under. An empty upper name is skipped. Values
// that are not valid UTF-8 are treated as unset.
func (r *Resolver) getPair(lower, upper string) (value, source string, ok bool) {
	for _, name := range [...]string{lower, upper} {
		if name == "" {
			continue
		}
		v, found := r.lookup.Lookup(name)
		if !found {
			continue
		}
		if !utf8.ValidString(v) {
			r.logger.Warn("envproxy: ignoring variable with non UTF-8 content", "var", name)
			continue
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		return v, name, true
	}
	return "", "", false
}

// ForURL determines the proxy for u from the process environment using
// DefaultConfig. See Resolver.ForURL for the rules applied.
func ForURL(u *url.URL) Decision {
	t, err := TargetFromURL(u)
	if err != nil {
		return Decision{}
	}
	return processResolver().ForURL(t)
}

// ForURLString parses rawURL and determines its proxy from the process
// environment using DefaultConfig.
func ForURLString(rawURL string) Decision {
	return processResolver().ForURLString(rawURL)
}

// processResolver returns a Resolver over the process environment.
// DefaultConfig always validates, so the error is impossible.
func processResolver() *Resolver {
	r, _ := New(nil)
	return r
}
