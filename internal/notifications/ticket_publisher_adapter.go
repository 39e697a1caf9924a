package notifications

import (
	"context"

	"flightly/internal/seats"
	"flightly/internal/tickets"
)

// TicketPublisherAdapter implements the tickets.Publisher interface over the
// itinerary notification service.
type TicketPublisherAdapter struct {
	service Service
}

// NewTicketPublisherAdapter creates a new adapter for reservation confirmations
func NewTicketPublisherAdapter(service Service) *TicketPublisherAdapter {
	return &TicketPublisherAdapter{service: service}
}

// PublishReservationConfirmed implements the tickets.Publisher interface
func (a *TicketPublisherAdapter) PublishReservationConfirmed(ctx context.Context, ticket *tickets.Ticket, flight *tickets.FlightInfo) error {
	notification := NewItineraryNotification(NotificationTypeTicketConfirmed)
	notification.RecipientEmail = ticket.Email
	notification.RecipientName = ticket.Name
	notification.PNR = ticket.PNR
	notification.FlightNumber = ticket.FlightNumber
	notification.FareType = ticket.FareType
	notification.Amount = ticket.Amount

	if flight != nil {
		notification.DepartureAirport = flight.DepartureAirport
		notification.DestinationAirport = flight.DestinationAirport
		notification.DepartureTime = flight.DepartureTime

		if coord, err := seats.ToCoordinate(ticket.Seat, flight.Layout); err == nil {
			notification.SeatLabel = seats.ToLabel(&coord, flight.Layout)
		}
	}

	return a.service.SendItinerary(ctx, notification)
}
