package views

import (
	"context"
	"errors"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
)

type HotelCard struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	CoverURL string `json:"cover_url,omitempty"`
}

type DashboardModel struct {
	Owner    *domain.UserProfile `json:"owner"`
	Hotels   []HotelCard         `json:"hotels"`
	Draft    domain.HotelDraft   `json:"draft"`
	Creating bool                `json:"creating"`
}

// Dashboard lists the owner's hotels and hosts the create-hotel form.
type Dashboard struct {
	life *Lifecycle
	deps Deps
}

// OpenDashboard fetches the hotel list. A failed fetch is not fatal: the
// collection raises an alert and keeps whatever it had.
func OpenDashboard(ctx context.Context, deps Deps) *Dashboard {
	d := &Dashboard{life: Mount(ctx, "dashboard"), deps: deps}
	_ = deps.Hotels.FetchList(d.life.Context())
	return d
}

func (d *Dashboard) Close() { d.life.Unmount() }

func (d *Dashboard) Model() DashboardModel {
	hotels := d.deps.Hotels.Hotels()
	cards := make([]HotelCard, 0, len(hotels))
	for _, h := range hotels {
		cards = append(cards, cardOf(h))
	}
	m := DashboardModel{
		Hotels:   cards,
		Draft:    d.deps.Hotels.Draft(),
		Creating: d.deps.Hotels.Creating(),
	}
	if d.deps.Session != nil {
		m.Owner = d.deps.Session.User()
	}
	return m
}

func cardOf(h domain.Hotel) HotelCard {
	c := HotelCard{ID: h.ID, Name: h.Name, City: h.Address.City, Country: h.Address.Country}
	if len(h.Images) > 0 {
		c.CoverURL = h.Images[0].ImageURL
	}
	return c
}

func (d *Dashboard) EditDraft(patch domain.DraftPatch) { d.deps.Hotels.UpdateDraft(patch) }

func (d *Dashboard) CancelDraft() { d.deps.Hotels.ResetDraft() }

// CreateHotel submits the draft. Validation failures come back as
// *domain.ValidationError with nothing sent.
func (d *Dashboard) CreateHotel() (HotelCard, error) {
	h, err := d.deps.Hotels.CreateFromDraft(d.life.Context())
	notes := d.deps.notifier()
	switch {
	case err == nil:
		notes.Add(domain.KindSuccess, "Hotel created")
	case errors.Is(err, app.ErrImageNotUploaded):
		notes.Add(domain.KindError, "Hotel created, but the image could not be uploaded")
		return cardOf(h), nil
	case errors.Is(err, domain.ErrInFlight):
		return HotelCard{}, err
	default:
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return HotelCard{}, ve
		}
		notes.Add(domain.KindError, domain.UserMessage(err, "Could not create hotel"))
		return HotelCard{}, err
	}
	return cardOf(h), nil
}
