package projections

import (
	"errors"

	"clubsite/internal/domain/pace"
)

// ShowPacesState is what the calculator output region should display.
type ShowPacesState int

const (
	// StateEmpty means no input: the output region is cleared and nothing else is shown.
	StateEmpty ShowPacesState = iota
	// StateInvalid means non-empty input that failed validation.
	StateInvalid
	// StateTable means a pace table was computed.
	StateTable
)

// ShowPacesResult is the full replacement content for the calculator output.
type ShowPacesResult struct {
	State   ShowPacesState
	Message string     // Set only for StateInvalid
	Table   pace.Table // Set only for StateTable
}

// QueryShowPaces turns the raw text-field value into the calculator output.
// Each call describes the whole output; nothing carries over from earlier calls.
// PRE: none
// POST: Returns exactly one of the three states; never returns an error
func QueryShowPaces(input string) ShowPacesResult {
	seconds, err := pace.ParseDuration(input)
	switch {
	case errors.Is(err, pace.ErrNoInput):
		return ShowPacesResult{State: StateEmpty}
	case err != nil:
		return ShowPacesResult{State: StateInvalid, Message: pace.InvalidTimeMessage}
	}
	return ShowPacesResult{State: StateTable, Table: pace.ComputePaces(seconds)}
}
