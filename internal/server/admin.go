package server

import (
	"crypto/subtle"
	"net/http"
)

type admin struct {
	key             []byte
	notFoundHandler http.Handler
}

func newAdmin(key string, notFoundHandler http.Handler) *admin {
	return &admin{
		key:             []byte(key),
		notFoundHandler: notFoundHandler,
	}
}

// middleware hides admin routes behind a 404 unless X-Admin-Key matches.
func (a *admin) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if k := r.Header.Get("X-Admin-Key"); k != "" && subtle.ConstantTimeCompare([]byte(k), a.key) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		a.notFoundHandler.ServeHTTP(w, r)
	})
}
