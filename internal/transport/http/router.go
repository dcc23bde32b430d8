package http

import (
	"net/http"
	"time"

	httpmw "github.com/scorekeep/score-service/internal/transport/http/middleware"
	"github.com/scorekeep/score-service/internal/transport/ws"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func NewRouter(h *Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// WS endpoint; channel membership is message-driven, no room in the
	// path. Kept outside the timeout and logging wrappers, which would
	// break the hijacked connection.
	r.Get("/ws", wsServer.HandleWS)

	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.Logging)
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/rooms", func(rm chi.Router) {
			rm.Post("/", h.CreateRoom)

			rm.Route("/{code}", func(rr chi.Router) {
				rr.Get("/", h.GetRoom)
				rr.Post("/participants", h.AddParticipant)
				rr.Post("/games", h.StartGame)
				rr.Get("/history", h.History)
			})
		})

		pr.Route("/scores/{id}", func(sc chi.Router) {
			sc.Post("/increment", h.IncrementScore)
			sc.Post("/decrement", h.DecrementScore)
		})

		pr.Post("/games/{id}/end", h.EndGame)
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Viewers are browser clients served from elsewhere; knowing the
	// 4-digit code is the only access control.
	return cors.AllowAll().Handler(r)
}
