package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// AssertLedgerConsistent checks that seat status and the booking ledger agree:
// no seat is linked to two active bookings, every seat of an active booking
// is booked, and every booked seat belongs to an active booking.
func AssertLedgerConsistent(t *testing.T, db *gorm.DB) {
	t.Helper()

	var doubled []uint
	require.NoError(t, db.Raw(`
		SELECT bs.seat_id FROM booking_seats bs
		JOIN bookings b ON b.id = bs.booking_id
		WHERE b.status = 'active'
		GROUP BY bs.seat_id
		HAVING COUNT(*) > 1`).Scan(&doubled).Error)
	assert.Empty(t, doubled, "seats linked to more than one active booking")

	var released []uint
	require.NoError(t, db.Raw(`
		SELECT bs.seat_id FROM booking_seats bs
		JOIN bookings b ON b.id = bs.booking_id
		JOIN seats s ON s.id = bs.seat_id
		WHERE b.status = 'active' AND s.status <> 'booked'`).Scan(&released).Error)
	assert.Empty(t, released, "active bookings holding seats that are not booked")

	var orphaned []uint
	require.NoError(t, db.Raw(`
		SELECT s.id FROM seats s
		WHERE s.status = 'booked' AND NOT EXISTS (
			SELECT 1 FROM booking_seats bs
			JOIN bookings b ON b.id = bs.booking_id
			WHERE bs.seat_id = s.id AND b.status = 'active')`).Scan(&orphaned).Error)
	assert.Empty(t, orphaned, "booked seats without an active booking")
}
