package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"flightly/internal/shared/constants"
	"flightly/pkg/cache"
)

var ErrSessionNotFound = errors.New("booking session not found")

// Store persists wizard sessions between requests and owns the payment lock
// that prevents duplicate in-flight submissions.
type Store interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AcquirePaymentLock returns false when a payment for the session is
	// already in flight.
	AcquirePaymentLock(ctx context.Context, id uuid.UUID) (bool, error)
	ReleasePaymentLock(ctx context.Context, id uuid.UUID) error
}

type redisStore struct {
	cache  cache.Service
	client *redis.Client
}

// NewRedisStore builds the production store: sessions as JSON values with the
// wizard abandonment TTL, payment locks as SETNX keys.
func NewRedisStore(cacheService cache.Service, client *redis.Client) Store {
	return &redisStore{cache: cacheService, client: client}
}

func (s *redisStore) Save(ctx context.Context, session *Session) error {
	return s.cache.Set(ctx, constants.BookingSessionKey(session.ID), session, constants.BOOKING_SESSION_TTL)
}

func (s *redisStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	var session Session
	err := s.cache.Get(ctx, constants.BookingSessionKey(id), &session)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *redisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.cache.Delete(ctx, constants.BookingSessionKey(id))
}

func (s *redisStore) AcquirePaymentLock(ctx context.Context, id uuid.UUID) (bool, error) {
	acquired, err := s.client.SetNX(ctx, constants.BookingPaymentLockKey(id), "1", constants.BOOKING_PAYMENT_LOCK_TTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire payment lock: %w", err)
	}
	return acquired, nil
}

func (s *redisStore) ReleasePaymentLock(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, constants.BookingPaymentLockKey(id)).Err()
}

// memoryStore keeps sessions in a map. Used by tests and by single-node runs
// without redis.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]Session
	locks    map[uuid.UUID]bool
}

func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[uuid.UUID]Session),
		locks:    make(map[uuid.UUID]bool),
	}
}

func (s *memoryStore) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *memoryStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (s *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memoryStore) AcquirePaymentLock(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[id] {
		return false, nil
	}
	s.locks[id] = true
	return true, nil
}

func (s *memoryStore) ReleasePaymentLock(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
	return nil
}
