package tickets

import (
	"context"

	"flightly/internal/flights"
	"flightly/internal/planes"
)

// flightServiceAdapter bridges the flights and planes services into the
// narrow FlightReader the reservation path needs.
type flightServiceAdapter struct {
	flights flights.Service
	planes  planes.Service
}

// NewFlightServiceAdapter wraps the flights service as a FlightReader.
func NewFlightServiceAdapter(flightService flights.Service, planeService planes.Service) FlightReader {
	return &flightServiceAdapter{flights: flightService, planes: planeService}
}

func (a *flightServiceAdapter) FlightByNumber(ctx context.Context, flightNumber string) (*FlightInfo, error) {
	flight, err := a.flights.GetFlightByNumber(flightNumber)
	if err != nil {
		return nil, err
	}

	layout, totalSeats, err := a.planes.LayoutFor(flight.PlaneID)
	if err != nil {
		return nil, err
	}

	return &FlightInfo{
		ID:                 flight.ID,
		FlightNumber:       flight.FlightNumber,
		DepartureAirport:   flight.DepartureAirport,
		DestinationAirport: flight.DestinationAirport,
		DepartureTime:      flight.DepartureTime,
		ArrivalTime:        flight.ArrivalTime,
		Price:              flight.Price,
		GateNumber:         flight.GateNumber,
		Layout:             layout,
		TotalSeats:         totalSeats,
	}, nil
}
