package session

import (
	"fmt"

	"stocktake/core/apperror"
	"stocktake/feature/stocktake/models"
)

// Action is a requested lifecycle change.
type Action string

const (
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionEnd    Action = "end"
)

// Next returns the status reached by applying action to from.
//
//	active --pause--> paused --resume--> active
//	active|paused --end--> ended (terminal)
func Next(from models.SessionStatus, action Action) (models.SessionStatus, error) {
	switch action {
	case ActionPause:
		if from == models.StatusActive {
			return models.StatusPaused, nil
		}
	case ActionResume:
		if from == models.StatusPaused {
			return models.StatusActive, nil
		}
	case ActionEnd:
		if from == models.StatusActive || from == models.StatusPaused {
			return models.StatusEnded, nil
		}
	default:
		return "", fmt.Errorf("%w: unknown action %q", apperror.ErrInvalidInput, action)
	}
	return "", fmt.Errorf("%w: cannot %s a session that is %s", apperror.ErrInvalidTransition, action, from)
}
