// Package middleware provides HTTP middlewares for access control and logging.
package middleware

import (
	"net"
	"net/http"
)

// RequireLoopback is a middleware that rejects connections from other hosts.
//
// The vault daemon only ever serves the wallet running on the same
// machine, so anything arriving from a non-loopback address is answered
// with 403 before it reaches a handler. Requests whose remote address
// cannot be parsed are rejected the same way.
func RequireLoopback(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		ip := net.ParseIP(host)
		if ip == nil || !ip.IsLoopback() {
			http.Error(w, "loopback connections only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
