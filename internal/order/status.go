package order

import "fmt"

type Status string

const (
	StatusCreated Status = "created"
	StatusPaid    Status = "paid"
	StatusReady   Status = "ready"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusCreated, StatusPaid, StatusReady:
		return Status(s), true
	}
	return "", false
}

// next holds the single allowed forward transition per status. Ready is
// terminal.
var next = map[Status]Status{
	StatusCreated: StatusPaid,
	StatusPaid:    StatusReady,
}

// CanTransition reports whether from -> to is the one allowed forward
// step. Backward and skipped transitions are rejected.
func CanTransition(from, to Status) bool {
	return next[from] == to
}

// Advance returns the status after from, or an error if from is terminal.
func Advance(from Status) (Status, error) {
	to, ok := next[from]
	if !ok {
		return "", fmt.Errorf("status %q is terminal", from)
	}
	return to, nil
}
