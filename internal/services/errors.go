package services

import (
	"context"
	"errors"
	"net/http"

	"activity-dashboard/internal/database"
	"activity-dashboard/internal/models"
)

// ErrSelectionRequired is returned before any fetch when the user or date is missing
var ErrSelectionRequired = errors.New("a user and date must be selected")

// SelectionPrompt is shown while a view waits for a selection
const SelectionPrompt = "Select a user and date to view activity"

// Outcome is the view state a fetch result resolves to
type Outcome struct {
	State  models.FetchState
	Error  *models.ViewError
	Prompt string
}

// ClassifyError maps a fetch error onto the view state machine.
// A nil error is loaded, a missing record is not_found, a missing
// selection is idle, everything else is a retryable failure.
func ClassifyError(err error) Outcome {
	if err == nil {
		return Outcome{State: models.StateLoaded}
	}

	if errors.Is(err, ErrSelectionRequired) {
		return Outcome{State: models.StateIdle, Prompt: SelectionPrompt}
	}

	if errors.Is(err, database.ErrNotFound) {
		return Outcome{State: models.StateNotFound}
	}

	viewErr := &models.ViewError{Message: err.Error(), Retryable: true}

	var httpErr *database.HTTPError
	switch {
	case errors.As(err, &httpErr):
		viewErr.StatusCode = httpErr.StatusCode
		if httpErr.Message != "" {
			viewErr.Message = httpErr.Message
		}
	case errors.Is(err, context.DeadlineExceeded):
		viewErr.StatusCode = http.StatusGatewayTimeout
		viewErr.Message = "statistics service timed out"
	case errors.Is(err, database.ErrInvalidPayload):
		viewErr.Message = "statistics service returned an unexpected response"
	}

	return Outcome{State: models.StateFailed, Error: viewErr}
}
