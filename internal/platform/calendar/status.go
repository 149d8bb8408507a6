package calendar

import (
	"errors"
	"fmt"
)

// Status is an appointment lifecycle state.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusArrived    Status = "arrived"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// ErrInvalidTransition is returned when a status change is not in the
// transition table.
var ErrInvalidTransition = errors.New("invalid status transition")

// transitions is the legal state machine. The happy path runs
// scheduled -> confirmed -> arrived -> in_progress -> completed; cancelled
// and no_show are terminal deviations reachable from any non-terminal state,
// except that an in-progress visit can no longer be a no-show.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusArrived, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusArrived, StatusInProgress, StatusCancelled, StatusNoShow},
	StatusArrived:    {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible from s.
func (s Status) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// OccupiesTime reports whether an appointment in state s still holds its
// time slot. Cancelled and no-show appointments free the doctor's calendar.
func (s Status) OccupiesTime() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// CanTransition reports whether from -> to is legal. Writing the current
// status back is always allowed as a no-op.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates a status change, returning ErrInvalidTransition with
// both states named when the change is not legal.
func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidTransition)
	}
	return nil
}
