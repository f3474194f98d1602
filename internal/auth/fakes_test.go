package auth

import (
	"context"
	"errors"
	"time"

	"github.com/pardha-bandaru/cafeteria-api/internal/user"
)

// fakeUserStore is an in-memory UserStore enforcing the same uniqueness
// rules as the Postgres repository.
type fakeUserStore struct {
	nextID int64
	users  map[int64]*user.User
	err    error // forced infrastructure failure
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*user.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, email, phone, name, passwordHash string) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email || u.Phone == phone {
			return nil, user.ErrDuplicateUser
		}
	}
	s.nextID++
	u := &user.User{
		ID:           s.nextID,
		Email:        email,
		Phone:        phone,
		Name:         name,
		PasswordHash: passwordHash,
		RegisteredOn: time.Now(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

// fakeLedger is an in-memory RevocationLedger with duplicate detection.
type fakeLedger struct {
	revoked map[string]time.Time
	err     error // forced infrastructure failure
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{revoked: make(map[string]time.Time)}
}

func (l *fakeLedger) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if l.err != nil {
		return l.err
	}
	if _, ok := l.revoked[token]; ok {
		return ErrTokenAlreadyRevoked
	}
	l.revoked[token] = expiresAt
	return nil
}

func (l *fakeLedger) IsRevoked(ctx context.Context, token string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	_, ok := l.revoked[token]
	return ok, nil
}

// fakeLimiter is a no-op RateLimiter unless primed to reject.
type fakeLimiter struct {
	exceeded bool
}

func (l *fakeLimiter) CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error) {
	return l.exceeded, nil
}

func (l *fakeLimiter) RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error {
	return nil
}

var errStoreDown = errors.New("store unavailable")
