package envproxy

import (
	"github.com/zhangyunhao116/envproxy/internal/envutil"
)

// Lookup provides environment variable values by name.
//
// Implementations only answer exact-name queries; the Resolver is
// responsible for trying both the lowercase and uppercase spellings.
// Lookup must be safe for concurrent use if the Resolver is shared.
type Lookup interface {
	Lookup(name string) (value string, ok bool)
}

// LookupFunc adapts an ordinary function to the Lookup interface.
type LookupFunc func(name string) (string, bool)

// Lookup calls f(name).
func (f LookupFunc) Lookup(name string) (string, bool) {
	return f(name)
}

// ProcessEnv returns a Lookup backed by the current process environment.
func ProcessEnv() Lookup {
	return LookupFunc(getenv)
}

// EnvSlice returns a Lookup over a "KEY=VALUE" slice, the format used by
// os.Environ and exec.Cmd.Env. The slice is copied.
func EnvSlice(env []string) Lookup {
	cpy := append([]string(nil), env...)
	return LookupFunc(func(name string) (string, bool) {
		return envutil.GetEnv(cpy, name)
	})
}

// MapEnv returns a Lookup over a map. The map is copied.
func MapEnv(env map[string]string) Lookup {
	cpy := make(map[string]string, len(env))
	for k, v := range env {
		cpy[k] = v
	}
	return LookupFunc(func(name string) (string, bool) {
		v, ok := cpy[name]
		return v, ok
	})
}
