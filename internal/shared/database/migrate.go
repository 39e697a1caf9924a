package database

import (
	"flightly/internal/flights"
	"flightly/internal/planes"
	"flightly/internal/tickets"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&planes.Plane{},
		&flights.Flight{},
		&tickets.Ticket{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
