package attend

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeTokenMalformed     = "TOKEN_MALFORMED"
	textCodeTokenExpired       = "TOKEN_EXPIRED"
	textCodeRequestTimeout     = "REQUEST_TIMEOUT"
	textCodeUnauthorized       = "SESSION_UNAUTHORIZED"
	textCodeRateLimited        = "RATE_LIMITED"
	textCodeServerError        = "SERVER_ERROR"
	textCodeNetworkUnreachable = "NETWORK_UNREACHABLE"
	textCodeLoginFailed        = "LOGIN_FAILED"
)

// ErrTokenMalformed is returned when a stored token fails structural decode:
// wrong segment structure, non-JSON payload, or missing required claims.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenMalformed)

// ErrTokenExpired is returned when a freshly issued token decodes but its
// expiry is not strictly in the future. A stored token in the same state is
// cleared silently during resolution instead.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenExpired)

// ErrRequestTimeout marks requests that exceeded their bounded duration,
// distinct from network and server failures.
var ErrRequestTimeout = goerrors.New("Request timed out. Please try again.", goerrors.CategoryOperation).
	WithTextCode(textCodeRequestTimeout)

// ErrUnauthorized marks HTTP 401 responses. The api client clears the token
// store before surfacing this, forcing the session back to Anonymous.
var ErrUnauthorized = goerrors.New("Session expired. Please login again.", goerrors.CategoryAuth).
	WithTextCode(textCodeUnauthorized).
	WithCode(goerrors.CodeUnauthorized)

// ErrRateLimited marks HTTP 429 responses.
var ErrRateLimited = goerrors.New("Too many requests. Please wait and try again.", goerrors.CategoryRateLimit).
	WithTextCode(textCodeRateLimited)

// ErrServerError marks HTTP 5xx responses.
var ErrServerError = goerrors.New("Server error. Please try again later.", goerrors.CategoryInternal).
	WithTextCode(textCodeServerError)

// ErrNetworkUnreachable marks transport failures before any HTTP response.
var ErrNetworkUnreachable = goerrors.New("Network unreachable. Check your connection.", goerrors.CategoryOperation).
	WithTextCode(textCodeNetworkUnreachable)

// ErrLoginFailed is the generic fallback when the backend rejects a login
// without a usable message.
var ErrLoginFailed = goerrors.New("Login failed", goerrors.CategoryAuth).
	WithTextCode(textCodeLoginFailed)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if hasTextCode(err, textCodeTokenExpired) {
		return true
	}
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for structurally invalid tokens
func IsMalformedError(err error) bool {
	if hasTextCode(err, textCodeTokenMalformed) {
		return true
	}
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsTimeoutError reports whether err is the request-timeout kind.
func IsTimeoutError(err error) bool {
	return hasTextCode(err, textCodeRequestTimeout)
}

// IsUnauthorizedError reports whether err came from an HTTP 401.
func IsUnauthorizedError(err error) bool {
	return hasTextCode(err, textCodeUnauthorized)
}

// IsRateLimitedError reports whether err came from an HTTP 429.
func IsRateLimitedError(err error) bool {
	return hasTextCode(err, textCodeRateLimited)
}

// IsServerError reports whether err came from an HTTP 5xx.
func IsServerError(err error) bool {
	return hasTextCode(err, textCodeServerError)
}

// IsNetworkError reports whether err is a transport failure that produced
// no HTTP response at all.
func IsNetworkError(err error) bool {
	return hasTextCode(err, textCodeNetworkUnreachable)
}

// IsValidationError reports whether err is a client-side form validation
// failure that never reached the network.
func IsValidationError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryValidation
}

// IsNoFaceError matches the backend's "no face found in frame" rejection,
// which the scan loop treats as an expected negative rather than a failure.
func IsNoFaceError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "No face")
}

// UserMessage extracts the human-readable message from an error produced by
// this module, falling back to the raw error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}
	return err.Error()
}

func hasTextCode(err error, code string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}
