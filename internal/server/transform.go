package server

import (
	"bwtnet/internal/bwt"
	"bwtnet/internal/ctxlog"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"
)

// Operation names, also used as result store keys.
const (
	OpTransform = "bwt"
	OpInverse   = "inverse_bwt"
)

// request accepts both operations' fields; each operation reads its own and
// treats a missing one as empty.
type request struct {
	Sequence string `json:"Sequence"`
	BWT      string `json:"BWT"`
}

type operation struct {
	name  string
	input func(request) string
	run   func(string) (string, error)
}

var operations = []operation{
	{
		name:  OpTransform,
		input: func(req request) string { return req.Sequence },
		run:   bwt.Transform,
	},
	{
		name:  OpInverse,
		input: func(req request) string { return req.BWT },
		run:   bwt.Inverse,
	},
}

func (s *Server) operationHandler(op operation) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := ctxlog.Get(r.Context()).With("op", op.name)

		var req request
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes)).Decode(&req)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body larger than %d bytes", tooLarge.Limit))
				return
			}
			log.Warn("invalid request body", "error", err)
			writeError(w, r, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return
		}

		in := op.input(req)
		log.Debug("received sequence", "len", len(in))

		if s.maxSequenceLength > 0 {
			if n := utf8.RuneCountInString(in); n > s.maxSequenceLength {
				writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("sequence of %d symbols exceeds limit of %d", n, s.maxSequenceLength))
				return
			}
		}

		if s.store != nil {
			rec, ok, err := s.store.Lookup(op.name, in, time.Now())
			if err != nil {
				log.Error("failed to look up stored result", "error", err)
			} else if ok {
				log.Debug("served stored result", "hits", rec.Hits)
				writeJSON(w, r, http.StatusOK, resultResponse{Result: rec.Output})
				return
			}
		}

		out, err := op.run(in)
		if err != nil {
			if errors.Is(err, bwt.ErrMalformedInput) {
				log.Error("could not apply operation", "error", err)
				writeError(w, r, http.StatusBadRequest, err.Error())
				return
			}
			panic(fmt.Errorf("server: %s: %w", op.name, err))
		}

		if s.store != nil {
			if err := s.store.Save(op.name, in, out, time.Now()); err != nil {
				log.Error("failed to store result", "error", err)
			}
		}

		writeJSON(w, r, http.StatusOK, resultResponse{Result: out})
	})
}

func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
}
