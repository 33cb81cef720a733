package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/abczzz13/realip"
	realipprom "github.com/abczzz13/realip/prometheus"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type whoamiResponse struct {
	IP     string `json:"ip"`
	Masked string `json:"masked"`
	Source string `json:"source,omitempty"`
}

func newResolver(cfg config, logger realip.Logger, registry *prom.Registry) (*realip.Resolver, error) {
	return realip.New(
		realip.WithPeerFallback(cfg.PeerFallback),
		realip.WithLogger(logger),
		realipprom.WithRegisterer(registry),
	)
}

// newHandler wires the echo routes behind the resolver middleware.
func newHandler(resolver *realip.Resolver, registry *prom.Registry, logger *slog.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Recoverer)
	router.Use(resolver.Middleware)

	router.Method(http.MethodGet, "/", resolver.Handler(func(w http.ResponseWriter, r *http.Request, ip realip.RealIP) {
		resp := whoamiResponse{
			IP:     ip.String(),
			Masked: ip.Mask().String(),
		}
		if resolution, ok := realip.ResolutionFromContext(r.Context()); ok {
			resp.Source = resolution.Source
		}
		writeJSON(w, logger, resp)
	}))

	router.Method(http.MethodGet, "/masked", resolver.MaskedHandler(func(w http.ResponseWriter, _ *http.Request, ip realip.PrivacyMaskedIP) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, ip.String()+"\n")
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return router
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write response", "error", err)
	}
}
