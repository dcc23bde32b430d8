package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/scorekeep/score-service/internal/domain"
	"github.com/scorekeep/score-service/internal/service"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	roomSvc *service.RoomService
	gameSvc *service.GameService
}

func NewHandler(room *service.RoomService, game *service.GameService) *Handler {
	return &Handler{
		roomSvc: room,
		gameSvc: game,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("handler."+op, slog.Any("err", err))
		writeJSON(w, status, ErrorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// POST /rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomSvc.CreateRoom(r.Context())
	if err != nil {
		h.writeError(w, "CreateRoom", err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

// GET /rooms/{code}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	room, err := h.roomSvc.GetRoom(r.Context(), code)
	if err != nil {
		h.writeError(w, "GetRoom", err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// POST /rooms/{code}/participants
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	p, err := h.roomSvc.AddParticipant(r.Context(), chi.URLParam(r, "code"), req.Name)
	if err != nil {
		h.writeError(w, "AddParticipant", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// POST /rooms/{code}/games
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.gameSvc.StartGame(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, "StartGame", err)
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

// POST /scores/{id}/increment
func (h *Handler) IncrementScore(w http.ResponseWriter, r *http.Request) {
	h.adjustScore(w, r, +1)
}

// POST /scores/{id}/decrement
func (h *Handler) DecrementScore(w http.ResponseWriter, r *http.Request) {
	h.adjustScore(w, r, -1)
}

func (h *Handler) adjustScore(w http.ResponseWriter, r *http.Request, delta int) {
	score, err := h.gameSvc.AdjustScore(r.Context(), chi.URLParam(r, "id"), delta)
	if err != nil {
		h.writeError(w, "AdjustScore", err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// POST /games/{id}/end
func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.gameSvc.EndGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "EndGame", err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// GET /rooms/{code}/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameSvc.History(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, "History", err)
		return
	}
	if games == nil {
		games = []domain.Game{}
	}
	writeJSON(w, http.StatusOK, games)
}
