package server

import (
	"bwtnet/internal/db"
	"net/http"
	"strconv"
)

type historyResponse struct {
	Records []db.Record `json:"records"`
}

// historyHandler lists stored results, optionally filtered by ?op= and capped
// by ?limit=.
func (s *Server) historyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op := r.URL.Query().Get("op")

		limit := -1
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}

		resp := historyResponse{Records: []db.Record{}}
		for _, rec := range s.store.All() {
			if limit >= 0 && len(resp.Records) >= limit {
				break
			}
			if op != "" && rec.Op != op {
				continue
			}
			resp.Records = append(resp.Records, rec)
		}

		writeJSON(w, r, http.StatusOK, resp)
	})
}
