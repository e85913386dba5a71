package seats

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildLayout returns the seats of a venue with rows-1 full rows of
// seatsPerRow and a last row of lastRowSeats. blocked lists "row-seat"
// positions that start out blocked.
func BuildLayout(rows, seatsPerRow, lastRowSeats int, blocked []string) ([]Seat, error) {
	if rows < 1 || seatsPerRow < 1 || lastRowSeats < 1 {
		return nil, fmt.Errorf("invalid layout %d rows x %d seats, last row %d", rows, seatsPerRow, lastRowSeats)
	}

	type pos struct{ row, seat int }
	blockedSet := make(map[pos]bool, len(blocked))
	for _, raw := range blocked {
		row, seat, err := parsePosition(raw)
		if err != nil {
			return nil, err
		}
		blockedSet[pos{row, seat}] = true
	}

	var layout []Seat
	for row := 1; row <= rows; row++ {
		n := seatsPerRow
		if row == rows {
			n = lastRowSeats
		}
		for seat := 1; seat <= n; seat++ {
			status := StatusAvailable
			if blockedSet[pos{row, seat}] {
				status = StatusBlocked
				delete(blockedSet, pos{row, seat})
			}
			layout = append(layout, Seat{RowNumber: row, SeatNumber: seat, Status: status})
		}
	}

	for p := range blockedSet {
		return nil, fmt.Errorf("blocked seat %d-%d is outside the layout", p.row, p.seat)
	}
	return layout, nil
}

func parsePosition(raw string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid seat position %q, want row-seat", raw)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row in %q: %w", raw, err)
	}
	seat, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid seat in %q: %w", raw, err)
	}
	return row, seat, nil
}
