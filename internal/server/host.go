package server

import (
	"net/http"
)

// hostMiddleware answers 421 for requests addressed to another host. POST
// bodies do not survive redirects, so mismatches are rejected outright.
func hostMiddleware(host string, next http.Handler) http.Handler {
	if host == "" {
		return next
	}

	misdirected := errorHandler(http.StatusMisdirectedRequest, "misdirected request")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Host != host {
			misdirected.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
