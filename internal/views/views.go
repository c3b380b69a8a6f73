// Package views holds the owner console's screens. Each view mounts on a
// Lifecycle, fetches what it needs, and exposes the actions its screen offers.
// Views return JSON-friendly models; rendering is up to the caller.
package views

import (
	"errors"
	"fmt"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
)

// Deps are the stores and ports every view is built from.
type Deps struct {
	API     domain.Backend
	Notes   domain.Notifier
	Alerts  domain.Alerter
	Session *app.SessionStore
	Hotels  *app.HotelCollection
}

func (d Deps) notifier() domain.Notifier {
	if d.Notes == nil {
		return discard{}
	}
	return d.Notes
}

type discard struct{}

func (discard) Add(k domain.NotificationKind, m string) domain.Notification {
	return domain.Notification{Kind: k, Message: m}
}

// MountError means a view could not load. The caller navigates to Redirect;
// partial renders are never produced.
type MountError struct {
	View     string
	Redirect string
	Err      error
}

func (e *MountError) Error() string { return fmt.Sprintf("mount %s: %v", e.View, e.Err) }

func (e *MountError) Unwrap() error { return e.Err }

// RedirectFor returns where a failed mount should navigate, or "".
func RedirectFor(err error) string {
	var me *MountError
	if errors.As(err, &me) {
		return me.Redirect
	}
	return ""
}

// fieldErrors turns a backend detail payload into per-field messages. It
// understands an object keyed by field and the list form
// [{"loc": [..., "field"], "msg": "..."}].
func fieldErrors(detail any) *domain.ValidationError {
	out := &domain.ValidationError{}
	switch d := detail.(type) {
	case map[string]any:
		for k, v := range d {
			out.Add(k, fmt.Sprint(v))
		}
	case []any:
		for _, item := range d {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			field := "form"
			if loc, ok := m["loc"].([]any); ok && len(loc) > 0 {
				field = fmt.Sprint(loc[len(loc)-1])
			}
			msg, _ := m["msg"].(string)
			if msg == "" {
				msg = "is invalid"
			}
			out.Add(field, msg)
		}
	}
	if len(out.Fields) == 0 {
		return nil
	}
	return out
}

// formError picks the inline error for a failed submit: field errors when the
// backend sent structured detail, else the user-facing message.
func formError(err error, fallback string) error {
	var ae *domain.APIError
	if errors.As(err, &ae) && ae.Kind == domain.KindRejected {
		if fe := fieldErrors(ae.Errors); fe != nil {
			return fe
		}
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return &domain.ValidationError{Fields: map[string]string{"form": domain.UserMessage(err, fallback)}}
}
