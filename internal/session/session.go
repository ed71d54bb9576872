package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// ErrNotFound is returned when a session id does not resolve to a live
// session.
var ErrNotFound = errors.New("session not found")

const keyPrefix = "console:session:"

// Session is the single source of truth for a console login: who the caller
// is and the upstream bearer token acting on their behalf. Nothing else in
// the gateway stores auth state.
type Session struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Username      string      `json:"username"`
	FullName      string      `json:"fullName"`
	Role          domain.Role `json:"role"`
	DepartmentID  *string     `json:"departmentId,omitempty"`
	UpstreamToken string      `json:"upstreamToken"`
	CreatedAt     time.Time   `json:"createdAt"`
	ExpiresAt     time.Time   `json:"expiresAt"`
}

// User reconstructs the domain user carried by the session.
func (s *Session) User() *domain.User {
	return &domain.User{
		ID:           s.UserID,
		Username:     s.Username,
		FullName:     s.FullName,
		Role:         s.Role,
		DepartmentID: s.DepartmentID,
	}
}

// Store persists sessions in Redis with the configured TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore builds a session store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Create stores a new session for the given user and upstream token.
func (s *Store) Create(ctx context.Context, user *domain.User, upstreamToken string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		Username:      user.Username,
		FullName:      user.FullName,
		Role:          user.Role,
		DepartmentID:  user.DepartmentID,
		UpstreamToken: upstreamToken,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, payload, s.ttl).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by id.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Delete removes a session, logging the caller out.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
