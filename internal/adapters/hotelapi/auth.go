package hotelapi

import (
	"context"
	"net/http"

	"hotelhub/internal/domain"
)

func (c *Client) Login(ctx context.Context, cr domain.Credentials) (domain.TokenResponse, error) {
	var out domain.TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "/auth/login", cr, &out)
	return out, err
}

func (c *Client) RegisterOwner(ctx context.Context, r domain.Registration) (domain.TokenResponse, error) {
	var out domain.TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/register/owner", "/auth/register/owner", r, &out)
	return out, err
}

// meEnvelope accepts both {"user": {...}} and a bare profile object.
type meEnvelope struct {
	User *domain.UserProfile `json:"user"`
	domain.UserProfile
}

func (c *Client) Me(ctx context.Context) (domain.UserProfile, error) {
	var env meEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", "/auth/me", nil, &env); err != nil {
		return domain.UserProfile{}, err
	}
	if env.User != nil {
		return *env.User, nil
	}
	return env.UserProfile, nil
}

func (c *Client) UpdateOwnerProfile(ctx context.Context, u domain.ProfileUpdate) (domain.ProfileUpdateResult, error) {
	var out domain.ProfileUpdateResult
	err := c.doJSON(ctx, http.MethodPut, "/profile/update/owner", "/profile/update/owner", u, &out)
	return out, err
}
