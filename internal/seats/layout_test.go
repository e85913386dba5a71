package seats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLayout(t *testing.T) {
	layout, err := BuildLayout(12, 7, 3, []string{"12-3", " 1-1"})
	require.NoError(t, err)
	require.Len(t, layout, 80)

	assert.Equal(t, Seat{RowNumber: 1, SeatNumber: 1, Status: StatusBlocked}, layout[0])
	assert.Equal(t, StatusAvailable, layout[1].Status)

	last := layout[len(layout)-1]
	assert.Equal(t, 12, last.RowNumber)
	assert.Equal(t, 3, last.SeatNumber)
	assert.Equal(t, StatusBlocked, last.Status)
}

func TestBuildLayout_Errors(t *testing.T) {
	_, err := BuildLayout(0, 7, 3, nil)
	assert.Error(t, err)

	_, err = BuildLayout(2, 7, 3, []string{"2-5"})
	assert.ErrorContains(t, err, "outside the layout")

	_, err = BuildLayout(2, 7, 3, []string{"row1"})
	assert.ErrorContains(t, err, "want row-seat")

	_, err = BuildLayout(2, 7, 3, []string{"a-1"})
	assert.Error(t, err)
}
