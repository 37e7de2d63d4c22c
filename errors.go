package envproxy

import "errors"

// Sentinel errors returned by the envproxy package.
//
// ForURL and ForURLString never return these; malformed environment values
// collapse to a NoProxy decision. They surface from the parsing helpers,
// configuration validation and the dialer adapter.
var (
	// ErrConfigInvalid indicates the provided configuration failed validation.
	ErrConfigInvalid = errors.New("envproxy: invalid configuration")

	// ErrInvalidTarget indicates the target URL lacks a scheme or host, or
	// carries an unusable port.
	ErrInvalidTarget = errors.New("envproxy: invalid target")

	// ErrInvalidProxyURL indicates a proxy variable value could not be
	// turned into a proxy host and port.
	ErrInvalidProxyURL = errors.New("envproxy: invalid proxy url")

	// ErrUnsupportedScheme indicates the proxy scheme has no dialer.
	ErrUnsupportedScheme = errors.New("envproxy: unsupported proxy scheme")
)
