package views

import (
	"context"

	"hotelhub/internal/app"
)

const (
	loginFailed        = "login failed"
	registrationFailed = "registration failed"
)

// Login validates the form, then signs in. Returned errors are
// *domain.ValidationError so the form can show them inline; on success the
// caller navigates to the dashboard.
func Login(ctx context.Context, s *app.SessionStore, f app.LoginForm) error {
	if err := app.Validate(f); err != nil {
		return err
	}
	if err := s.Login(ctx, f.Credentials()); err != nil {
		return formError(err, loginFailed)
	}
	return nil
}

func Register(ctx context.Context, s *app.SessionStore, f app.RegisterForm) error {
	if err := app.Validate(f); err != nil {
		return err
	}
	if err := s.Register(ctx, f.Registration()); err != nil {
		return formError(err, registrationFailed)
	}
	return nil
}
