package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps revoked session ids and one-time password reset tokens.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	SaveResetToken(ctx context.Context, token, profileID string, ttl time.Duration) error
	// ConsumeResetToken returns the profile id and deletes the token.
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

var errTokenNotFound = errors.New("token not found")

type redisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) TokenStore {
	return &redisTokenStore{rdb: rdb}
}

func revokedKey(tokenID string) string { return fmt.Sprintf("revoked_session:%s", tokenID) }
func resetKey(token string) string     { return fmt.Sprintf("reset_token:%s", token) }

func (s *redisTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

func (s *redisTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) SaveResetToken(ctx context.Context, token, profileID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, resetKey(token), profileID, ttl).Err()
}

func (s *redisTokenStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	val, err := s.rdb.GetDel(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", errTokenNotFound
	}
	return val, err
}

// memoryTokenStore is used when Redis is not configured (local development).
// Entries do not survive a restart.
type memoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	resets  map[string]resetEntry
	now     func() time.Time
}

type resetEntry struct {
	profileID string
	expires   time.Time
}

func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{
		revoked: make(map[string]time.Time),
		resets:  make(map[string]resetEntry),
		now:     time.Now,
	}
}

func (s *memoryTokenStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = s.now().Add(ttl)
	return nil
}

func (s *memoryTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if s.now().After(exp) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *memoryTokenStore) SaveResetToken(_ context.Context, token, profileID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets[token] = resetEntry{profileID: profileID, expires: s.now().Add(ttl)}
	return nil
}

func (s *memoryTokenStore) ConsumeResetToken(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.resets[token]
	if !ok {
		return "", errTokenNotFound
	}
	delete(s.resets, token)
	if s.now().After(entry.expires) {
		return "", errTokenNotFound
	}
	return entry.profileID, nil
}
