package http

import (
	"errors"
	"net/http"

	"github.com/scorekeep/score-service/internal/domain"
)

// statusFor maps service-layer failures onto HTTP statuses at the
// request boundary. Anything unrecognized is a store error: logged
// server-side, surfaced as a generic 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrGameNotFound),
		errors.Is(err, domain.ErrScoreNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRoomExpired):
		return http.StatusGone
	case errors.Is(err, domain.ErrBadCode),
		errors.Is(err, domain.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoParticipants):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrGameInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
