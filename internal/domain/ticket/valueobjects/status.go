package valueobjects

import "fmt"

// Status is the ticket lifecycle state. Transitions are driven by the
// backend data; this application only observes the current value and gates
// message submission on it.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

var validStatuses = map[Status]bool{
	StatusOpen:   true,
	StatusClosed: true,
}

var statusTransitions = map[Status][]Status{
	StatusOpen:   {StatusClosed},
	StatusClosed: {StatusOpen},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) IsOpen() bool {
	return s == StatusOpen
}

func (s Status) IsClosed() bool {
	return s == StatusClosed
}

func (s Status) CanTransitionTo(newStatus Status) bool {
	allowed, ok := statusTransitions[s]
	if !ok {
		return false
	}
	for _, a := range allowed {
		if a == newStatus {
			return true
		}
	}
	return false
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return st, nil
}
