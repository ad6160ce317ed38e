// Package server exposes the Burrows-Wheeler Transform over HTTP/JSON.
package server

import (
	"bwtnet/internal/ctxlog"
	"bwtnet/internal/db"
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultMaxBodyBytes = 1 << 20

// Store caches results between requests. *db.DB implements it.
type Store interface {
	Lookup(op, input string, now time.Time) (db.Record, bool, error)
	Save(op, input, output string, now time.Time) error
	All() iter.Seq2[string, db.Record]
}

type Server struct {
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
	tls             *tlsLoader
	anti            *antidos

	store             Store
	maxBodyBytes      int64
	maxSequenceLength int
}

// New builds the server. store may be nil, in which case every request is
// computed.
func New(config Config, store Store) *Server {
	if config.Port == 0 {
		panic("server: port is required")
	}
	if config.AntidosBuckets == 0 {
		panic("server: antidosBuckets is required")
	}
	if config.AntidosPeriod == 0 {
		panic("server: antidosPeriod is required")
	}
	if config.MaxConcurrent == 0 {
		panic("server: maxConcurrent is required")
	}
	if config.ShutdownTimeout == 0 {
		panic("server: shutdownTimeout is required")
	}
	if (config.TLSCert == "") != (config.TLSKey == "") {
		panic("server: tlsCert and tlsKey must be set together")
	}

	s := &Server{
		addr:              net.JoinHostPort(config.Host, fmt.Sprint(config.Port)),
		shutdownTimeout:   config.ShutdownTimeout,
		store:             store,
		maxBodyBytes:      config.MaxBodyBytes,
		maxSequenceLength: config.MaxSequenceLength,
	}
	if s.maxBodyBytes == 0 {
		s.maxBodyBytes = defaultMaxBodyBytes
	}

	if config.TLSCert != "" {
		t, err := newTLSLoader(config.TLSCert, config.TLSKey, config.TLSReloadInterval)
		if err != nil {
			panic(fmt.Errorf("server: %w", err))
		}
		s.tls = t
	}

	s.anti = newAntidos(config.AntidosBuckets, config.AntidosPeriod)
	limit := newLimiter(config.MaxConcurrent, tooManyRequestsHandler())

	mux := http.NewServeMux()

	slog.Info("registering handler", "path", "/")
	mux.Handle("/", notFoundHandler())

	slog.Info("registering handler", "path", "/healthz")
	mux.Handle("GET /healthz", healthHandler())

	for _, op := range operations {
		p := "/" + op.name
		slog.Info("registering handler", "path", p, "op", op.name)
		mux.Handle("POST "+p, s.anti.middleware(limit.middleware(s.operationHandler(op))))
		mux.Handle(p, methodNotAllowedHandler(http.MethodPost))
	}

	if config.AdminKey != "" && store != nil {
		adm := newAdmin(config.AdminKey, notFoundHandler())
		slog.Info("registering handler", "path", "/admin/history")
		mux.Handle("GET /admin/history", adm.middleware(s.historyHandler()))
	}

	handler := http.Handler(mux)
	handler = hostMiddleware(config.CanonicalHost, handler)
	handler = newRecover(handler, internalServerErrorHandler())
	handler = logMiddleware(handler)

	s.handler = handler
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is done, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	logger := ctxlog.Get(ctx)
	defer s.anti.stop()

	srv := &http.Server{
		Handler:           s.handler,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}
	if s.tls != nil {
		srv.TLSConfig = s.tls.config()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server is running", "addr", l.Addr().String(), "tls", s.tls != nil)

		var err error
		if s.tls != nil {
			err = srv.ServeTLS(l, "", "")
		} else {
			err = srv.Serve(l)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	if s.tls != nil {
		g.Go(func() error {
			s.tls.reloadLoop(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("server is shutting down")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer stopCancel()

		err := srv.Shutdown(stopCtx)
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Error("server shutdown timeout exceeded")
			return err
		}
		if err == nil {
			logger.Info("all clients closed successfully")
		}
		return err
	})

	return g.Wait()
}
