package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foodline-dispatch/internal/http/handlers"
	mw "foodline-dispatch/internal/http/middleware"
	"foodline-dispatch/internal/http/middleware/ratelimit"
	"foodline-dispatch/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
// The rate limit middleware guards only the message tunnel; nil disables it.
func New(
	logger logx.Logger,
	base *handlers.Handlers,
	operators *handlers.OperatorHandler,
	orders *handlers.OrderHandler,
	messages *handlers.MessageHandler,
	in *handlers.IntakeHandler,
	relayLimit *ratelimit.Middleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(mw.Observability(logger))

	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/operators", func(r chi.Router) {
		r.Post("/", operators.Register)
		r.Get("/", operators.List)
		r.Get("/{id}", operators.GetByID)
		r.Delete("/{id}", operators.Remove)
		r.Put("/{id}/status", operators.SetStatus)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orders.Submit)
		r.Get("/{token}", orders.GetByToken)
		r.Post("/{token}/accept", orders.Accept)
		r.Post("/{token}/reject", orders.Reject)
		r.Post("/{token}/complete", orders.Complete)
		r.Post("/{token}/close-chat", orders.CloseChat)
	})

	r.Route("/messages", func(r chi.Router) {
		if relayLimit != nil {
			r.Use(relayLimit.Handler())
		}
		r.Post("/text", messages.RelayText)
		r.Post("/media", messages.RelayMedia)
		r.Post("/close", messages.CloseSession)
	})

	r.Route("/intake", func(r chi.Router) {
		r.Post("/start", in.Start)
		r.Post("/text", in.Text)
		r.Post("/photo", in.Photo)
		r.Post("/payment", in.ChoosePayment)
		r.Post("/abandon", in.Abandon)
	})

	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
