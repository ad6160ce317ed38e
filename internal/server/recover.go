package server

import (
	"bwtnet/internal/ctxlog"
	"bwtnet/internal/rec"
	"net/http"
)

type rech struct {
	next http.Handler
	err  http.Handler
}

func newRecover(next, err http.Handler) *rech {
	return &rech{
		next: next,
		err:  err,
	}
}

func (h *rech) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if v == http.ErrAbortHandler {
			panic(v)
		}

		p := rec.From(v)
		log := ctxlog.Get(r.Context())
		log.Error("recovered panic", "error", p.Value, "stack", string(p.Stack))

		clear(w.Header())
		h.err.ServeHTTP(w, r)
	}()

	h.next.ServeHTTP(w, r)
}
