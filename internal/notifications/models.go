package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeTicketConfirmed NotificationType = "TICKET_CONFIRMED"
	NotificationTypeCheckInReminder NotificationType = "CHECKIN_REMINDER"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "PENDING"
	NotificationStatusQueued   NotificationStatus = "QUEUED"
	NotificationStatusSending  NotificationStatus = "SENDING"
	NotificationStatusSent     NotificationStatus = "SENT"
	NotificationStatusFailed   NotificationStatus = "FAILED"
	NotificationStatusRetrying NotificationStatus = "RETRYING"
	NotificationStatusExpired  NotificationStatus = "EXPIRED"
)

// ItineraryNotification is one email-bound message about a reservation. It
// travels through Kafka as JSON; the consumer renders it into the itinerary
// email.
type ItineraryNotification struct {
	ID   uuid.UUID        `json:"id"`
	Type NotificationType `json:"type"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	PNR                string    `json:"pnr_no"`
	FlightNumber       string    `json:"flight_number"`
	DepartureAirport   string    `json:"departure_airport"`
	DestinationAirport string    `json:"destination_airport"`
	DepartureTime      time.Time `json:"departure_time"`
	SeatLabel          string    `json:"seat_label"`
	FareType           string    `json:"fare_type"`
	Amount             float64   `json:"amount"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

func NewItineraryNotification(notType NotificationType) *ItineraryNotification {
	now := time.Now()
	return &ItineraryNotification{
		ID:         uuid.New(),
		Type:       notType,
		Status:     NotificationStatusPending,
		MaxRetries: 3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// GetPartitionKey routes every message about one reservation to the same
// partition, so retries for a PNR stay ordered.
func (n *ItineraryNotification) GetPartitionKey() string {
	return n.PNR
}

func (n *ItineraryNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func (n *ItineraryNotification) IsExpired() bool {
	return n.ExpiresAt != nil && time.Now().After(*n.ExpiresAt)
}

func (n *ItineraryNotification) ShouldRetry() bool {
	return n.RetryCount < n.MaxRetries &&
		n.Status == NotificationStatusFailed &&
		!n.IsExpired()
}

func (n *ItineraryNotification) MarkSent() {
	now := time.Now()
	n.Status = NotificationStatusSent
	n.SentAt = &now
	n.UpdatedAt = now
}

func (n *ItineraryNotification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	n.UpdatedAt = time.Now()

	errorStr := err.Error()
	n.LastError = &errorStr
}

func (n *ItineraryNotification) IncrementRetry() {
	n.RetryCount++
	n.UpdatedAt = time.Now()
	if n.ShouldRetry() {
		n.Status = NotificationStatusRetrying
	} else {
		n.Status = NotificationStatusExpired
	}
}
