package bookings

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsActive checks if the booking still holds its seats
func (s Status) IsActive() bool {
	return s == StatusActive
}
