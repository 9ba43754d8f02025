package server

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/faciam-dev/formfields/internal/api/handler"
	"github.com/faciam-dev/formfields/internal/config"
	"github.com/faciam-dev/formfields/internal/fieldset"
	"github.com/faciam-dev/formfields/internal/server/middleware"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

const defaultOrigin = "http://localhost:5173"

// New builds the HTTP API serving the fields of svc.
func New(svc *fieldset.Service) huma.API {
	r := chi.NewRouter()
	r.Use(cors.Handler(corsOptions(config.GetEnv("ALLOWED_ORIGINS", defaultOrigin))))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	api := humachi.New(r, huma.DefaultConfig("FormFields API", Version))
	api.UseMiddleware(middleware.MetricsMW)

	handler.RegisterFields(api, &handler.FieldHandler{Svc: svc})
	return api
}

// corsOptions allows the comma separated origins.
func corsOptions(origins string) cors.Options {
	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	return cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}
}
