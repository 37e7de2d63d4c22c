// Package envutil reads and edits "KEY=VALUE" environment slices and
// derives the names of proxy variables.
package envutil

import (
	"strings"
)

// GetEnv gets a value from an env slice.
// When a key appears more than once the last entry wins, matching how
// os/exec deduplicates exec.Cmd.Env. Entries without '=' are ignored.
func GetEnv(env []string, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	prefix := key + "="
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], prefix) {
			return env[i][len(prefix):], true
		}
	}
	return "", false
}

// SetEnv sets a variable in an env slice and returns the result.
// Every existing entry for key is dropped and the new entry is appended,
// so the returned slice holds exactly one definition.
func SetEnv(env []string, key, value string) []string {
	return append(UnsetEnv(env, key), key+"="+value)
}

// UnsetEnv returns a new slice without any entry for key.
func UnsetEnv(env []string, key string) []string {
	prefix := key + "="
	result := make([]string, 0, len(env))
	for _, e := range env {
		if !strings.HasPrefix(e, prefix) {
			result = append(result, e)
		}
	}
	return result
}

// ProxyVarNames returns the lowercase and uppercase names of the proxy
// variable for a URL scheme or a well-known prefix such as "no" or "all".
//
//	ProxyVarNames("https") // "https_proxy", "HTTPS_PROXY"
func ProxyVarNames(prefix string) (lower, upper string) {
	lower = strings.ToLower(prefix) + "_proxy"
	upper = strings.ToUpper(prefix) + "_PROXY"
	return lower, upper
}
