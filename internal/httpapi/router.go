package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRouter configures HTTP routes and middleware. All API routes require a
// valid Bearer JWT signed with secret.
func (h *Handler) SetupRouter(secret string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(secret))

		r.Route("/deliveries", func(r chi.Router) {
			r.Post("/", h.scheduleDelivery)
			r.Get("/", h.listDeliveries)
			r.Get("/{id}", h.getDelivery)
			r.Post("/{id}/status", h.transitionDelivery)
			r.Post("/{id}/assign", h.assignVendor)
			r.Get("/{id}/tracking", h.trackingHistory)
			r.Get("/{id}/payment", h.getPayment)
		})

		r.Post("/payments", h.createPayment)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.listNotifications)
			r.Post("/{id}/read", h.markNotificationRead)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
