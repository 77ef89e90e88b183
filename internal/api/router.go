package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/fesdmit/portal/internal/api/handlers"
	"github.com/fesdmit/portal/internal/api/middleware"
	"github.com/fesdmit/portal/internal/config"
	"github.com/fesdmit/portal/internal/domain/events"
	"github.com/fesdmit/portal/internal/domain/registrations"
	"github.com/fesdmit/portal/internal/metrics"
	"github.com/fesdmit/portal/internal/storage"
)

// Store is what the router needs from a storage backend: document access for
// the API handlers plus connectivity reporting for /test.
type Store interface {
	storage.DocumentStore
	storage.Diagnoser
}

// NewRouter wires handlers, middleware, and services around the injected
// store. The store may be backed by a dead connection; handlers then answer
// with a store-unavailable problem per request instead of the process dying.
func NewRouter(cfg config.Config, logger zerolog.Logger, store Store) http.Handler {
	eventsHandler := handlers.NewEventsHandler(events.NewService(store), cfg.Environment)
	regsHandler := handlers.NewRegistrationsHandler(registrations.NewService(store), cfg.Environment)
	diagnostics := &handlers.Diagnostics{
		Store:         store,
		URLConfigured: cfg.Database.URL != "",
		DBConfigured:  cfg.Database.Name != "",
	}

	mux := http.NewServeMux()
	mux.Handle("/", handlers.Root())
	mux.Handle("/test", diagnostics)
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz())
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	limitBody := middleware.RequestSize(middleware.DefaultMaxBodySize)

	mux.Handle("/api/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventsHandler.List),
		http.MethodPost: limitBody(http.HandlerFunc(eventsHandler.Create)),
	}))
	mux.Handle("/api/registrations", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(regsHandler.List),
		http.MethodPost: limitBody(http.HandlerFunc(regsHandler.Create)),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = metrics.Instrument(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
