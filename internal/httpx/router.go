package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/AngelCh415/digmar-dash/internal/metrics"
	"github.com/AngelCh415/digmar-dash/internal/report"
	"github.com/AngelCh415/digmar-dash/internal/utils"
)

type Options struct {
	MaxUploadBytes int64
	Metrics        http.Handler
}

type handler struct {
	log      *slog.Logger
	svc      *metrics.Service
	fmt      report.Formatter
	validate *validator.Validate
	maxBytes int64
}

func NewRouter(log *slog.Logger, svc *metrics.Service, f report.Formatter, opts Options) http.Handler {
	h := &handler{
		log:      log.With(slog.String("component", "httpx")),
		svc:      svc,
		fmt:      f,
		validate: validator.New(),
		maxBytes: opts.MaxUploadBytes,
	}
	if h.maxBytes <= 0 {
		h.maxBytes = 32 << 20
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RealIP)
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(middleware.Recoverer)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	if opts.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	mux.Get("/", h.index)
	mux.Post("/dashboard", h.dashboard)

	mux.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Post("/analyze", h.analyze)
		r.Post("/export", h.export)
	})
	return mux
}
