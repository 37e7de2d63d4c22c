// Package envproxy determines the proxy to use for a URL from the
// conventional proxy environment variables, following the curl convention.
//
// The variables consulted are no_proxy, <scheme>_proxy (http_proxy,
// https_proxy, ftp_proxy, ...) and all_proxy, each in lowercase or
// uppercase spelling with the lowercase spelling taking precedence.
// Resolution is a pure function of the target and the current environment:
// nothing is cached, and malformed variables degrade to "no proxy" instead
// of producing errors.
//
// Basic usage:
//
//	u, _ := url.Parse("https://www.example.org")
//	if host, port, ok := envproxy.ForURL(u).HostPort(); ok {
//	    fmt.Println("proxy:", host, port)
//	}
//
// For deterministic behavior, inject the environment:
//
//	r, err := envproxy.New(&envproxy.Config{
//	    Lookup: envproxy.MapEnv(map[string]string{
//	        "https_proxy": "http://proxy.local:3128",
//	        "no_proxy":    "localhost,10.0.0.0/8,.internal",
//	    }),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d := r.ForURL(envproxy.Target{Scheme: "https", Host: "api.example.com"})
//
// Resolver.ProxyFunc plugs a Resolver into http.Transport, and
// Decision.Dialer hands a decision to golang.org/x/net/proxy.
package envproxy
