package model

// BusinessHours is the open interval of a single day, both ends in HH:MM.
type BusinessHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Slot is a candidate start time. Time is HH:MM and Display is the 12 hour form.
type Slot struct {
	Time    string `json:"time"`
	Display string `json:"display"`
}

// TimeSet holds HH:MM values to leave out of a generated sequence.
type TimeSet map[string]struct{}

func NewTimeSet(times ...string) TimeSet {
	set := make(TimeSet, len(times))
	for _, t := range times {
		set[t] = struct{}{}
	}

	return set
}

func (s TimeSet) Contains(t string) bool {
	_, ok := s[t]

	return ok
}

// DefaultHours is used when a business has not configured its hours.
var DefaultHours = BusinessHours{Start: "09:00", End: "17:00"}

// Window is the range of dates that can be booked, both ends inclusive, as YYYY-MM-DD.
type Window struct {
	From string `json:"from"`
	To   string `json:"to"`
}
