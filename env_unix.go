//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package envproxy

import "golang.org/x/sys/unix"

func getenv(name string) (string, bool) {
	return unix.Getenv(name)
}
