package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// The unique (flight_id, seat) pair is the arbiter of seat races: the
	// second insert for the same seat fails instead of double-booking.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_flight_seat
		ON tickets (flight_id, seat);
	`).Error
	if err != nil {
		return err
	}

	// Occupancy reads scan all seats of one flight.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_flight_id
		ON tickets (flight_id);
	`).Error
	if err != nil {
		return err
	}

	// Check-in looks tickets up by PNR and surname.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_pnr_surname
		ON tickets (pnr, surname);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
