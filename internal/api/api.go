package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/Bezneima/Kucher-retro-back/pkg/zstdcompress"
)

type Service struct {
	Handler http.Handler
	Path    string
}

func newCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"Accept",
			"Accept-Encoding",
			"Content-Encoding",
			"Content-Type",
		},
		MaxAge: int(time.Second),
	})
}

// ListenServices serves the registered handlers over h2c until ctx is
// cancelled, then drains in-flight requests.
func ListenServices(ctx context.Context, services []Service, port string) error {
	mux := http.NewServeMux()
	for _, service := range services {
		slog.Info("registering service", "path", service.Path)
		mux.Handle(service.Path, service.Handler)
	}

	handler := h2c.NewHandler(newCORS().Handler(zstdcompress.Middleware(mux)), &http2.Server{
		IdleTimeout:          0,
		MaxConcurrentStreams: 100000,
	})
	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
