package domain

type UserProfile struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"owner_id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsOwner   bool   `json:"is_owner"`
}

type SessionState int

const (
	// SessionUnknown: a token is stored but the profile check has not resolved.
	SessionUnknown SessionState = iota
	SessionAnonymous
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionUnknown:
		return "unknown"
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	}
	return "invalid"
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// ProfileUpdate is the PUT /profile/update/owner payload; empty fields are omitted.
type ProfileUpdate struct {
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
	CurrentPassword string `json:"current_password"`
}

type ProfileUpdateResult struct {
	Owner    *UserProfile `json:"owner"`
	NewToken string       `json:"new_token,omitempty"`
}
