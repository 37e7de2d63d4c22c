//go:build !aix && !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !solaris && !windows

package envproxy

import "os"

// getenv falls back to the os package on platforms golang.org/x/sys does
// not cover.
func getenv(name string) (string, bool) {
	return os.LookupEnv(name)
}
