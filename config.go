package envproxy

import (
	"fmt"
	"log/slog"
	"strings"
)

// DefaultProxyPort is the port used when a proxy value omits one. It is
// 8080 (http-alt in the IANA registry). Note that curl uses 1080 instead.
const DefaultProxyPort = 8080

// maxPort is the largest valid TCP port.
const maxPort = 65535

// Config configures a Resolver.
type Config struct {
	// Lookup provides environment variable values. If nil, the process
	// environment is used.
	Lookup Lookup

	// DefaultPort is substituted when a proxy value has no port.
	// Zero means DefaultProxyPort.
	DefaultPort int

	// NoDefaultPort disables default port substitution. A proxy value
	// without an explicit port is then treated as malformed.
	NoDefaultPort bool

	// StrictHTTPProxy ignores the uppercase HTTP_PROXY variable and only
	// consults http_proxy for http targets. This mirrors curl, which avoids
	// HTTP_PROXY because CGI programs receive the client's Proxy header in it.
	StrictHTTPProxy bool

	// Logger is the structured logger. If nil, a no-op logger is used.
	Logger *slog.Logger
}

// DefaultConfig returns a Config that reads the process environment and
// substitutes DefaultProxyPort for missing proxy ports.
func DefaultConfig() *Config {
	return &Config{
		Lookup:      ProcessEnv(),
		DefaultPort: DefaultProxyPort,
	}
}

// Validate checks the configuration for errors. All problems are reported
// in a single error wrapping ErrConfigInvalid.
func (c *Config) Validate() error {
	var errs []string

	if c.DefaultPort < 0 || c.DefaultPort > maxPort {
		errs = append(errs, fmt.Sprintf("DefaultPort: %d out of range 0-%d", c.DefaultPort, maxPort))
	}
	if c.NoDefaultPort && c.DefaultPort != 0 {
		errs = append(errs, "DefaultPort: must be 0 when NoDefaultPort is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigInvalid, strings.Join(errs, "; "))
	}
	return nil
}

// defaultPort returns the port to substitute for port-less proxy values,
// or 0 when substitution is disabled.
func (c *Config) defaultPort() int {
	if c.NoDefaultPort {
		return 0
	}
	if c.DefaultPort == 0 {
		return DefaultProxyPort
	}
	return c.DefaultPort
}
