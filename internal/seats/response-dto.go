package seats

type SeatResponse struct {
	SeatID     uint   `json:"seatId"`
	Row        int    `json:"row"`
	SeatNumber int    `json:"seatNumber"`
	Status     Status `json:"status"`
	IsBooked   bool   `json:"isBooked"`
}

type SeatCountResponse struct {
	Available int64 `json:"available"`
	Booked    int64 `json:"booked"`
	Blocked   int64 `json:"blocked"`
	Total     int64 `json:"total"`
}

type Position struct {
	Row        int `json:"row"`
	SeatNumber int `json:"seatNumber"`
}

type AvailableSeatResponse struct {
	SeatID   uint     `json:"seatId"`
	Position Position `json:"position"`
}

func (s *Seat) ToResponse() SeatResponse {
	return SeatResponse{
		SeatID:     s.ID,
		Row:        s.RowNumber,
		SeatNumber: s.SeatNumber,
		Status:     s.Status,
		IsBooked:   s.IsBooked,
	}
}

func (s *Seat) Position() Position {
	return Position{Row: s.RowNumber, SeatNumber: s.SeatNumber}
}
