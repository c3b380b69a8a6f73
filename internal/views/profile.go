package views

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
)

type ProfileTab string

const (
	TabProfile  ProfileTab = "profile"
	TabPassword ProfileTab = "password"
)

const incorrectPasswordDetail = "Incorrect current password"

var (
	ErrCurrentPasswordRequired = errors.New("enter your current password to confirm")
	ErrPasswordFieldsRequired  = errors.New("fill in all password fields")
	ErrPasswordMismatch        = errors.New("new password and confirmation do not match")
	ErrIncorrectPassword       = errors.New("incorrect current password")
)

// ProfileForm holds both tabs' fields; only the active tab's fields are sent.
type ProfileForm struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
	CurrentPassword string `json:"current_password"`
}

type ProfileModel struct {
	Tab    ProfileTab          `json:"tab"`
	Owner  *domain.UserProfile `json:"owner"`
	Form   ProfileForm         `json:"form"`
	Saving bool                `json:"saving"`
}

// ProfileEditor edits the signed-in owner's details or password.
type ProfileEditor struct {
	life *Lifecycle
	deps Deps

	tab    *app.State[ProfileTab]
	form   *app.State[ProfileForm]
	saving app.Control
}

func OpenProfileEditor(ctx context.Context, deps Deps) *ProfileEditor {
	v := &ProfileEditor{
		life: Mount(ctx, "profile"),
		deps: deps,
		tab:  app.NewState(TabProfile),
	}
	var f ProfileForm
	if u := deps.Session.User(); u != nil {
		f = ProfileForm{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Phone: u.Phone}
	}
	v.form = app.NewState(f)
	return v
}

func (v *ProfileEditor) Close() { v.life.Unmount() }

func (v *ProfileEditor) Model() ProfileModel {
	f := v.form.Get()
	f.CurrentPassword, f.NewPassword, f.ConfirmPassword = "", "", ""
	return ProfileModel{Tab: v.tab.Get(), Owner: v.deps.Session.User(), Form: f, Saving: v.saving.Busy()}
}

func (v *ProfileEditor) SelectTab(t ProfileTab) {
	if t != TabPassword {
		t = TabProfile
	}
	v.tab.Set(t)
}

func (v *ProfileEditor) Edit(f ProfileForm) { v.form.Set(f) }

// Submit sends the active tab. A new token returned by the backend replaces
// the stored one. A wrong current password clears that field.
func (v *ProfileEditor) Submit() error {
	f := v.form.Get()
	tab := v.tab.Get()

	if f.CurrentPassword == "" {
		return ErrCurrentPasswordRequired
	}
	upd := domain.ProfileUpdate{CurrentPassword: f.CurrentPassword}
	switch tab {
	case TabPassword:
		if f.NewPassword == "" || f.ConfirmPassword == "" {
			return ErrPasswordFieldsRequired
		}
		if f.NewPassword != f.ConfirmPassword {
			return ErrPasswordMismatch
		}
		upd.NewPassword = f.NewPassword
	default:
		upd.FirstName = strings.TrimSpace(f.FirstName)
		upd.LastName = strings.TrimSpace(f.LastName)
		upd.Email = strings.TrimSpace(f.Email)
		upd.Phone = strings.TrimSpace(f.Phone)
	}

	if !v.saving.Acquire() {
		return domain.ErrInFlight
	}
	defer v.saving.Release()

	ctx := v.life.Context()
	res, err := v.deps.API.UpdateOwnerProfile(ctx, upd)
	if !v.life.Alive() {
		return domain.ErrUnmounted
	}
	if err != nil {
		return v.rejected(err)
	}

	if err := v.deps.Session.UpdateToken(ctx, res.NewToken); err != nil {
		log.Error().Err(err).Msg("store refreshed token")
		return err
	}
	if res.Owner != nil {
		v.deps.Session.SetUser(*res.Owner)
	}
	v.form.Update(func(p ProfileForm) ProfileForm {
		p.CurrentPassword, p.NewPassword, p.ConfirmPassword = "", "", ""
		return p
	})
	v.deps.notifier().Add(domain.KindSuccess, "Profile updated")
	return nil
}

func (v *ProfileEditor) rejected(err error) error {
	var ae *domain.APIError
	if errors.As(err, &ae) && ae.Status == 400 {
		if ae.Message == incorrectPasswordDetail {
			v.form.Update(func(p ProfileForm) ProfileForm {
				p.CurrentPassword = ""
				return p
			})
			return ErrIncorrectPassword
		}
		return formError(err, "Invalid data, please check the form")
	}
	log.Warn().Err(err).Msg("profile update failed")
	return formError(err, domain.GenericErrorMessage)
}
