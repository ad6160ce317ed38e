package server

import (
	"net/http"

	"golang.org/x/sync/semaphore"
)

type limiter struct {
	sem             *semaphore.Weighted
	tooManyRequests http.Handler
}

func newLimiter(maxConcurrent int64, tooManyRequests http.Handler) *limiter {
	return &limiter{
		sem:             semaphore.NewWeighted(maxConcurrent),
		tooManyRequests: tooManyRequests,
	}
}

// middleware rejects requests beyond the concurrency limit instead of queueing
// them; a transform holds its slot for the whole sort.
func (l *limiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.sem.TryAcquire(1) {
			l.tooManyRequests.ServeHTTP(w, r)
			return
		}
		defer l.sem.Release(1)

		next.ServeHTTP(w, r)
	})
}
