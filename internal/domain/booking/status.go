package booking

import "fmt"

// Status represents the current state of a booking in its lifecycle.
type Status string

const (
	// StatusWaiting is the initial status of every new booking.
	StatusWaiting Status = "WAITING"
	// StatusApproved is set when the item's owner approves the booking.
	StatusApproved Status = "APPROVED"
	// StatusRejected is set when the item's owner rejects the booking.
	StatusRejected Status = "REJECTED"
	// StatusCanceled exists in the filter vocabulary; no operation sets it.
	StatusCanceled Status = "CANCELED"
)

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
