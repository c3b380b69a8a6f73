package redisad

import (
	"context"

	"hotelhub/internal/adapters/filestore"
)

// TokenStore keeps the bearer token in Redis so several console processes
// on one machine share a login.
type TokenStore struct{ cache *Cache }

func NewTokenStore(c *Cache) *TokenStore { return &TokenStore{cache: c} }

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	var tok string
	if _, err := s.cache.Get(ctx, filestore.TokenKey, &tok); err != nil {
		return "", err
	}
	return tok, nil
}

// Set stores the token without expiry; lifetime ends at logout or backend rejection.
func (s *TokenStore) Set(ctx context.Context, token string) error {
	return s.cache.Set(ctx, filestore.TokenKey, token, 0)
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.cache.Del(ctx, filestore.TokenKey)
}
