package seats

// ListSeatsQuery binds GET /seats query parameters
type ListSeatsQuery struct {
	Available *bool `form:"available"`
	Row       *int  `form:"row" binding:"omitempty,min=1"`
}

func (q ListSeatsQuery) Filter() Filter {
	return Filter{
		AvailableOnly: q.Available != nil && *q.Available,
		Row:           q.Row,
	}
}
