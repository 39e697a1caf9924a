package constants

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Redis Cache Configuration
// This file centralizes the Redis keys and TTL values used by flightly.
// Pattern: flightly:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // plane configurations
	TTL_STATIC_MEDIUM = 12 * time.Hour // flight schedules
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "flightly"
)

// ================== PLANES MODULE ==================

const (
	CACHE_KEY_PLANE_DETAIL = CACHE_PREFIX + ":planes:detail:uuid:" // + plane-id
	TTL_PLANE_DETAIL       = TTL_STATIC_LONG
)

// ================== FLIGHTS MODULE ==================

// Seat occupancy is deliberately NOT cached: booking sessions snapshot it at
// start and the tickets table is the source of truth afterwards.
const (
	CACHE_KEY_FLIGHT_DETAIL = CACHE_PREFIX + ":flights:detail:uuid:"   // + flight-id
	CACHE_KEY_FLIGHT_NUMBER = CACHE_PREFIX + ":flights:detail:number:" // + flight-number
	TTL_FLIGHT_DETAIL       = TTL_STATIC_MEDIUM
)

// ================== BOOKING MODULE ==================

// Booking sessions are state, not cache: their TTL is the wizard's
// abandonment window, and the payment lock TTL bounds a stuck in-flight
// charge attempt.
const (
	BOOKING_SESSION_TTL      = 30 * time.Minute
	BOOKING_PAYMENT_LOCK_TTL = 45 * time.Second
)

// BookingSessionKey is the redis key holding one serialized wizard session.
func BookingSessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("%s:booking:session:%s", CACHE_PREFIX, sessionID)
}

// BookingPaymentLockKey is the SETNX key marking a payment in flight for a
// session; it prevents duplicate submissions.
func BookingPaymentLockKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("%s:booking:payment_lock:%s", CACHE_PREFIX, sessionID)
}
