package main

import (
	"fmt"
	"log"
	"time"

	"flightly/internal/flights"
	"flightly/internal/planes"
	"flightly/internal/shared/config"
	"flightly/internal/shared/database"
	"flightly/internal/tickets"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB

	// Seeded entities kept around for cross-references
	planeIDs  map[string]uuid.UUID
	flightIDs map[string]uuid.UUID
}

func main() {
	fmt.Println("Starting Flightly Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:        db,
		planeIDs:  make(map[string]uuid.UUID),
		flightIDs: make(map[string]uuid.UUID),
	}

	// Clean database
	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")

	// Seed data
	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("Database seeded successfully")

	fmt.Println("Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"tickets",
		"flights",
		"planes",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return nil
}

// SeedAll seeds planes, flights and a handful of existing reservations
func (s *Seeder) SeedAll() error {
	if err := s.seedPlanes(); err != nil {
		return fmt.Errorf("failed to seed planes: %w", err)
	}
	if err := s.seedFlights(); err != nil {
		return fmt.Errorf("failed to seed flights: %w", err)
	}
	if err := s.seedTickets(); err != nil {
		return fmt.Errorf("failed to seed tickets: %w", err)
	}
	return nil
}

func (s *Seeder) seedPlanes() error {
	cabins := []planes.Plane{
		{Name: "Boeing 777-300ER", Rows: 30, BlockSizes: "3-3-3"},
		{Name: "Airbus A350-900", Rows: 30, BlockSizes: "3-3-3"},
	}

	for i := range cabins {
		if err := s.db.PostgreSQL.Create(&cabins[i]).Error; err != nil {
			return err
		}
		s.planeIDs[cabins[i].Name] = cabins[i].ID
		fmt.Printf("  plane %s (%d rows, %s)\n", cabins[i].Name, cabins[i].Rows, cabins[i].BlockSizes)
	}

	return nil
}

func (s *Seeder) seedFlights() error {
	gate := func(g string) *string { return &g }
	departure := time.Now().AddDate(0, 0, 14).Truncate(time.Hour)

	list := []flights.Flight{
		{
			FlightNumber:       "FL1989",
			DepartureAirport:   "IST",
			DestinationAirport: "JFK",
			DepartureTime:      departure.Add(9 * time.Hour),
			ArrivalTime:        departure.Add(20 * time.Hour),
			Price:              1000,
			GateNumber:         gate("D4"),
			PlaneID:            s.planeIDs["Boeing 777-300ER"],
		},
		{
			FlightNumber:       "FL2024",
			DepartureAirport:   "IST",
			DestinationAirport: "LHR",
			DepartureTime:      departure.Add(11 * time.Hour),
			ArrivalTime:        departure.Add(15 * time.Hour),
			Price:              450,
			GateNumber:         gate("B7"),
			PlaneID:            s.planeIDs["Airbus A350-900"],
		},
		{
			FlightNumber:       "FL3110",
			DepartureAirport:   "JFK",
			DestinationAirport: "IST",
			DepartureTime:      departure.AddDate(0, 0, 7).Add(22 * time.Hour),
			ArrivalTime:        departure.AddDate(0, 0, 8).Add(8 * time.Hour),
			Price:              1100,
			PlaneID:            s.planeIDs["Boeing 777-300ER"],
		},
	}

	for i := range list {
		if err := s.db.PostgreSQL.Create(&list[i]).Error; err != nil {
			return err
		}
		s.flightIDs[list[i].FlightNumber] = list[i].ID
		fmt.Printf("  flight %s %s-%s at %s\n",
			list[i].FlightNumber,
			list[i].DepartureAirport,
			list[i].DestinationAirport,
			list[i].DepartureTime.Format(time.RFC3339))
	}

	return nil
}

// seedTickets pre-books a few seats so the seat map starts partially occupied
func (s *Seeder) seedTickets() error {
	list := []tickets.Ticket{
		{
			PNR:          "K7M3Q9",
			FlightID:     s.flightIDs["FL1989"],
			FlightNumber: "FL1989",
			Seat:         10, // row 2, seat 2B
			Name:         "Grace",
			Surname:      "Hopper",
			Email:        "grace.hopper@example.com",
			Phone:        "+12125550142",
			Gender:       "female",
			NationalID:   "10000000146",
			BirthDate:    time.Date(1986, 12, 9, 0, 0, 0, 0, time.UTC),
			FareType:     "advantage",
			Amount:       1200,
		},
		{
			PNR:          "X2B8ZL",
			FlightID:     s.flightIDs["FL1989"],
			FlightNumber: "FL1989",
			Seat:         41, // row 5, seat 5F
			Name:         "Alan",
			Surname:      "Turing",
			Email:        "alan.turing@example.com",
			Phone:        "+442075550199",
			Gender:       "male",
			NationalID:   "10000000245",
			BirthDate:    time.Date(1982, 6, 23, 0, 0, 0, 0, time.UTC),
			FareType:     "essentials",
			Amount:       1000,
		},
		{
			PNR:          "P4T6WN",
			FlightID:     s.flightIDs["FL2024"],
			FlightNumber: "FL2024",
			Seat:         0, // row 1, seat 1A
			Name:         "Ada",
			Surname:      "Lovelace",
			Email:        "ada.lovelace@example.com",
			Phone:        "+442075550107",
			Gender:       "female",
			NationalID:   "10000000344",
			BirthDate:    time.Date(1985, 12, 10, 0, 0, 0, 0, time.UTC),
			FareType:     "comfort",
			Amount:       648,
		},
	}

	for i := range list {
		if err := s.db.PostgreSQL.Create(&list[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  ticket %s on %s seat %d\n", list[i].PNR, list[i].FlightNumber, list[i].Seat)
	}

	return nil
}
