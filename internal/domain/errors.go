package domain

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomExpired   = errors.New("room has expired")
	ErrGameNotFound  = errors.New("game not found")
	ErrScoreNotFound = errors.New("score not found")

	ErrBadCode        = errors.New("malformed room code")
	ErrEmptyName      = errors.New("participant name is empty")
	ErrNoParticipants = errors.New("room has no participants")
	ErrGameInProgress = errors.New("room already has a game in progress")
	ErrCodeTaken      = errors.New("room code already taken")
)
