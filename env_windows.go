//go:build windows

package envproxy

import "golang.org/x/sys/windows"

// getenv is case-insensitive on Windows, so the lowercase and uppercase
// spellings of a variable resolve to the same value.
func getenv(name string) (string, bool) {
	return windows.Getenv(name)
}
