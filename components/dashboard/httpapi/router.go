package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"go.uber.org/zap"
)

// RouterOptions configures the chi router.
type RouterOptions struct {
	Handlers  *Handlers
	Broadcast *dashboard.BroadcastHook
	Logger    *zap.Logger
}

// NewRouter mounts the dashboard API on a chi router.
func NewRouter(opts RouterOptions) http.Handler {
	h := opts.Handlers
	mux := chi.NewRouter()
	if opts.Logger != nil {
		mux.Use(requestLogger(opts.Logger))
	}

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Get("/view", h.HandleView)
	mux.Get("/campaigns", h.HandleListCampaigns)
	mux.Post("/campaigns", h.HandleCreateCampaign)
	mux.Post("/campaigns/reload", h.HandleReloadCampaigns)
	mux.Post("/theme", h.HandleTheme)
	mux.Post("/modal", h.HandleModal)
	mux.Post("/draft", h.HandleDraft)

	mux.Route("/regions/{region}", func(r chi.Router) {
		r.Post("/drag", func(w http.ResponseWriter, r *http.Request) {
			h.HandleDrag(w, r, chi.URLParam(r, "region"))
		})
		r.Post("/measure", func(w http.ResponseWriter, r *http.Request) {
			h.HandleMeasure(w, r, chi.URLParam(r, "region"))
		})
		r.Post("/order", func(w http.ResponseWriter, r *http.Request) {
			h.HandleReorder(w, r, chi.URLParam(r, "region"))
		})
		r.Delete("/order", func(w http.ResponseWriter, r *http.Request) {
			h.HandleReset(w, r, chi.URLParam(r, "region"))
		})
	})

	if opts.Broadcast != nil {
		mux.Get("/events", opts.Broadcast.ServeSSE)
		mux.Get("/ws", opts.Broadcast.ServeWebSocket)
	}
	return mux
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}
