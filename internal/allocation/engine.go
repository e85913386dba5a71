// Package allocation chooses which available seats satisfy a booking request.
//
// Strategies are pure functions of the snapshot they are given: they never
// touch storage, so the caller decides how the snapshot is read and locked.
package allocation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInsufficientSeats is returned when no placement satisfies the request.
var ErrInsufficientSeats = errors.New("not enough seats available to fulfill the request")

// Candidate is one available seat in a snapshot.
type Candidate struct {
	SeatID     uint
	Row        int
	SeatNumber int
}

// Strategy selects exactly count seats from the snapshot, ordered by
// (row, seat number), or returns ErrInsufficientSeats.
type Strategy interface {
	Name() string
	Select(count int, snapshot []Candidate) ([]Candidate, error)
}

const (
	PolicyRowFirst = "row-first"
	PolicyCluster  = "cluster"
)

// NewStrategy resolves a placement policy name.
func NewStrategy(policy string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", PolicyRowFirst:
		return RowFirst{}, nil
	case PolicyCluster:
		return Cluster{}, nil
	default:
		return nil, fmt.Errorf("unknown placement policy %q", policy)
	}
}

// sortCandidates returns a copy of the snapshot ordered by row then seat number.
func sortCandidates(snapshot []Candidate) []Candidate {
	sorted := make([]Candidate, len(snapshot))
	copy(sorted, snapshot)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].SeatNumber < sorted[j].SeatNumber
	})
	return sorted
}

// RowFirst is the shipped policy: the lowest row holding at least count
// available seats wins and its lowest-numbered seats are taken. Seats need
// not be physically contiguous. When no row qualifies, the globally lowest
// (row, seat) seats are taken.
type RowFirst struct{}

func (RowFirst) Name() string { return PolicyRowFirst }

func (RowFirst) Select(count int, snapshot []Candidate) ([]Candidate, error) {
	if count < 1 {
		return nil, fmt.Errorf("invalid seat count %d", count)
	}
	if len(snapshot) < count {
		return nil, ErrInsufficientSeats
	}

	sorted := sortCandidates(snapshot)

	// sorted is grouped by row, so a row is a contiguous run
	start := 0
	for start < len(sorted) {
		end := start
		for end < len(sorted) && sorted[end].Row == sorted[start].Row {
			end++
		}
		if end-start >= count {
			return sorted[start : start+count], nil
		}
		start = end
	}

	return sorted[:count], nil
}

// Cluster prefers a contiguous run of seat numbers in one row, then a block
// spanning two adjacent rows over the same seat-number window, and finally
// falls back to the globally lowest seats.
type Cluster struct{}

func (Cluster) Name() string { return PolicyCluster }

type position struct {
	row, seat int
}

func (Cluster) Select(count int, snapshot []Candidate) ([]Candidate, error) {
	if count < 1 {
		return nil, fmt.Errorf("invalid seat count %d", count)
	}
	if len(snapshot) < count {
		return nil, ErrInsufficientSeats
	}

	free := make(map[position]Candidate, len(snapshot))
	maxRow, maxSeat := 0, 0
	for _, c := range snapshot {
		free[position{c.Row, c.SeatNumber}] = c
		if c.Row > maxRow {
			maxRow = c.Row
		}
		if c.SeatNumber > maxSeat {
			maxSeat = c.SeatNumber
		}
	}

	// Contiguous run within a single row
	for r := 1; r <= maxRow; r++ {
		for s := 1; s+count-1 <= maxSeat; s++ {
			run := make([]Candidate, 0, count)
			for i := 0; i < count; i++ {
				c, ok := free[position{r, s + i}]
				if !ok {
					break
				}
				run = append(run, c)
			}
			if len(run) == count {
				return run, nil
			}
		}
	}

	// Block over two adjacent rows, column by column
	for r := 1; r < maxRow; r++ {
		for s := 1; s+count-1 <= maxSeat; s++ {
			block := make([]Candidate, 0, 2*count)
			for i := 0; i < count; i++ {
				if c, ok := free[position{r, s + i}]; ok {
					block = append(block, c)
				}
				if c, ok := free[position{r + 1, s + i}]; ok {
					block = append(block, c)
				}
			}
			if len(block) >= count {
				return sortCandidates(block[:count]), nil
			}
		}
	}

	return sortCandidates(snapshot)[:count], nil
}
