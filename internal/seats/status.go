package seats

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
	StatusBlocked   Status = "blocked"
)

// IsValid checks if the seat status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusBlocked:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
