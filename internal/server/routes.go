package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dealradar/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Route("/deals", func(r chi.Router) {
				r.Post("/search", handler(s.postV1DealsSearch))
				r.Post("/analyze", handler(s.postV1DealsAnalyze))
			})
			r.Post("/plan", handler(s.postV1Plan))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
