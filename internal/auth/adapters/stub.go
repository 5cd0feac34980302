// Package adapters holds Authenticator implementations.
package adapters

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"onboard/internal/auth/models"
)

// Demo credentials accepted by the stub authenticator.
const (
	DemoEmail    = "test@test.com"
	DemoPassword = "password123"
)

const (
	msgSignedIn           = "Signed in successfully"
	msgInvalidCredentials = "Invalid email or password"
	msgAccountCreated     = "Account created successfully"
)

// StubAuthenticator stands in for the real identity provider. Sign-in only
// accepts the demo credentials; sign-up always succeeds.
type StubAuthenticator struct {
	delay time.Duration
}

type StubOption func(*StubAuthenticator)

// WithDelay simulates provider latency. The delay honours ctx cancellation.
func WithDelay(d time.Duration) StubOption {
	return func(a *StubAuthenticator) {
		a.delay = d
	}
}

func NewStubAuthenticator(opts ...StubOption) *StubAuthenticator {
	a := &StubAuthenticator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *StubAuthenticator) SignIn(ctx context.Context, creds models.Credentials) (*models.Result, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	if strings.EqualFold(creds.Email, DemoEmail) && creds.Password == DemoPassword {
		return &models.Result{Success: true, Message: msgSignedIn}, nil
	}
	return &models.Result{Success: false, Message: msgInvalidCredentials}, nil
}

func (a *StubAuthenticator) SignUp(ctx context.Context, _ models.Registration) (*models.Result, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	return &models.Result{Success: true, Message: msgAccountCreated, AccountID: uuid.NewString()}, nil
}

func (a *StubAuthenticator) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(a.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
