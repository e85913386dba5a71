package database

import (
	"fmt"

	"seatbook/internal/seats"

	"gorm.io/gorm"
)

const seatFlagConstraint = "chk_seats_booked_flag"

// MigrateConstraints adds PostgreSQL-only constraints that AutoMigrate cannot
// express: the redundant is_booked flag must always agree with status.
func MigrateConstraints(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if db.Migrator().HasConstraint(&seats.Seat{}, seatFlagConstraint) {
		return nil
	}

	err := db.Exec(fmt.Sprintf(
		`ALTER TABLE seats ADD CONSTRAINT %s CHECK ((status = 'booked') = is_booked)`,
		seatFlagConstraint,
	)).Error
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", seatFlagConstraint, err)
	}
	return nil
}
