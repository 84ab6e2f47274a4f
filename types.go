package attend

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore is the persistence boundary for the single session token. It
// performs no validation; callers decide what a stored value means.
type TokenStore interface {
	Get() (string, bool)
	Set(token string) error
	Clear() error
}

// LoginService issues the backend login call. Implemented by client.Client;
// the Manager only needs this slice of it.
type LoginService interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ATTEND "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] ATTEND "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ATTEND "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ATTEND "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
