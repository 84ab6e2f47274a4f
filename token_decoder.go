package attend

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/golang-jwt/jwt/v5"
)

// TokenDecoder performs the structural decode of a session token's payload
// segment. It deliberately skips signature verification: the backend already
// validated the token when it issued it, and the client only reads the
// payload to drive routing. Trusting the decode for anything
// security-sensitive is the server's job, not ours.
type TokenDecoder struct {
	parser *jwt.Parser
	logger Logger
}

// NewTokenDecoder creates a TokenDecoder instance
func NewTokenDecoder(logger Logger) *TokenDecoder {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenDecoder{
		parser: jwt.NewParser(),
		logger: logger,
	}
}

// Decode parses the token payload into Claims. It fails with
// ErrTokenMalformed when the token has the wrong segment structure, a
// non-JSON payload, or is missing the claims routing depends on.
func (d *TokenDecoder) Decode(raw string) (*Claims, error) {
	claims := &Claims{}

	if _, _, err := d.parser.ParseUnverified(raw, claims); err != nil {
		d.logger.Debug("TokenDecoder failed structural parse: %v", err)
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if err := requiredClaims(claims); err != nil {
		d.logger.Debug("TokenDecoder missing required claims: %v", err)
		return nil, err
	}

	return claims, nil
}

func requiredClaims(claims *Claims) error {
	missing := []string{}
	if claims.RegisteredClaims.Subject == "" {
		missing = append(missing, "sub")
	}
	if claims.UserRole == "" {
		missing = append(missing, "role")
	}
	if claims.RegisteredClaims.ExpiresAt == nil {
		missing = append(missing, "exp")
	}

	if len(missing) == 0 {
		return nil
	}

	clone := ErrTokenMalformed.Clone()
	if clone == nil {
		return ErrTokenMalformed
	}
	clone.Message = "token is missing required claims"
	return clone.WithMetadata(map[string]any{"missing": missing})
}
