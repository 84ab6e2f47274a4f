package attend

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of a session token. The backend signs these;
// the client reads them without verification for routing and display only.
type Claims struct {
	jwt.RegisteredClaims
	UserRole string `json:"role,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Dept     string `json:"dept,omitempty"`
}

// UserID returns the subject identity.
func (c *Claims) UserID() string {
	return c.RegisteredClaims.Subject
}

// Role returns the parsed role claim. Unknown role strings come back as-is
// and fail IsValid, which the guard treats like any non-matching role.
func (c *Claims) Role() Role {
	return Role(c.UserRole)
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ExpiredAt reports whether the token is expired at the given instant.
// Validity requires exp strictly in the future: a token whose exp equals now
// is already expired. Comparison happens at millisecond precision.
func (c *Claims) ExpiredAt(now time.Time) bool {
	if c.RegisteredClaims.ExpiresAt == nil {
		return true
	}
	return c.RegisteredClaims.ExpiresAt.Time.UnixMilli() <= now.UnixMilli()
}
