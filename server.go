package main

import (
	"context"
	"net/http"
	"time"
)

// httpService runs the HTTP server under a suture supervisor. Every
// restart gets a fresh http.Server.
type httpService struct {
	addr    string
	handler http.Handler
}

func (s *httpService) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *httpService) String() string {
	return "http server " + s.addr
}
