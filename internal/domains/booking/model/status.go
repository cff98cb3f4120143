package model

import "fmt"

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled}

// ActiveStatuses are the statuses whose bookings occupy a slot.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted}

var nextStatus = map[Status]Status{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusInProgress,
	StatusInProgress: StatusCompleted,
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:    {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:  {StatusInProgress: true, StatusCancelled: true},
	StatusInProgress: {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}

	return m[to]
}

// Next returns the single forward step from s, false when s has none.
func (s Status) Next() (Status, bool) {
	next, ok := nextStatus[s]

	return next, ok
}

func (s Status) CanCancel() bool {
	return CanTransition(s, StatusCancelled)
}

// CanDelete reports whether a booking in status s may be removed.
func (s Status) CanDelete() bool {
	return s == StatusPending
}

func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Label is the human readable form of s.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}
