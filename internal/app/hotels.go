package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"hotelhub/internal/domain"
)

// ErrImageNotUploaded: the hotel was created but its cover image upload failed.
// The hotel is kept.
var ErrImageNotUploaded = errors.New("hotel created but image upload failed")

const fetchHotelsFailed = "Could not load your hotels"

// HotelCollection holds the owner's hotel list and the create-hotel draft.
type HotelCollection struct {
	api   domain.HotelAPI
	alert domain.Alerter

	mu       sync.RWMutex
	hotels   []domain.Hotel
	draft    domain.HotelDraft
	loading  bool
	creating Control
}

func NewHotelCollection(api domain.HotelAPI, alert domain.Alerter) *HotelCollection {
	if alert == nil {
		alert = domain.AlertFunc(func(string) {})
	}
	return &HotelCollection{api: api, alert: alert}
}

// FetchList replaces the list wholesale. On failure the previous list stays
// and a blocking alert is raised.
func (c *HotelCollection) FetchList(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	hotels, err := c.api.MyHotels(ctx)

	c.mu.Lock()
	c.loading = false
	if err == nil {
		c.hotels = hotels
	}
	c.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Msg("fetch hotels failed")
		c.alert.Alert(domain.UserMessage(err, fetchHotelsFailed))
		return err
	}
	return nil
}

func (c *HotelCollection) Hotels() []domain.Hotel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Hotel, len(c.hotels))
	copy(out, c.hotels)
	return out
}

func (c *HotelCollection) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Remove drops a hotel locally, e.g. after it was deleted from its detail view.
func (c *HotelCollection) Remove(id int64) {
	c.mu.Lock()
	c.hotels = WithoutHotel(c.hotels, id)
	c.mu.Unlock()
}

func (c *HotelCollection) Draft() domain.HotelDraft {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.draft
}

// UpdateDraft applies the fields present in patch; an empty string clears a field.
func (c *HotelCollection) UpdateDraft(patch domain.DraftPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := &c.draft
	setIf(&d.Name, patch.Name)
	setIf(&d.Description, patch.Description)
	setIf(&d.Street, patch.Street)
	setIf(&d.City, patch.City)
	setIf(&d.State, patch.State)
	setIf(&d.Country, patch.Country)
	setIf(&d.PostalCode, patch.PostalCode)
	if patch.Latitude != nil {
		d.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		d.Longitude = patch.Longitude
	}
	if patch.Image != nil {
		d.Image = patch.Image
	}
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (c *HotelCollection) ResetDraft() {
	c.mu.Lock()
	c.draft = domain.HotelDraft{}
	c.mu.Unlock()
}

// CreateFromDraft validates the draft, creates the hotel, uploads the staged
// image if any, appends the result and resets the draft. A failed image upload
// does not roll back the hotel: the hotel is returned with ErrImageNotUploaded.
func (c *HotelCollection) CreateFromDraft(ctx context.Context) (domain.Hotel, error) {
	if !c.creating.Acquire() {
		return domain.Hotel{}, domain.ErrInFlight
	}
	defer c.creating.Release()

	draft := c.Draft()
	if err := Validate(draft); err != nil {
		c.alert.Alert("Please fill in name, street, city and country")
		return domain.Hotel{}, err
	}

	h, err := c.api.CreateHotel(ctx, draft.Input())
	if err != nil {
		log.Warn().Err(err).Str("name", draft.Name).Msg("create hotel failed")
		return domain.Hotel{}, err
	}

	var imgErr error
	if draft.Image != nil {
		img, err := c.api.UploadHotelImage(ctx, h.ID, *draft.Image)
		if err != nil {
			log.Warn().Err(err).Int64("hotel_id", h.ID).Msg("cover image upload failed")
			imgErr = fmt.Errorf("%w: %w", ErrImageNotUploaded, err)
		} else {
			h.Images = AppendImage(h.Images, img)
		}
	}

	c.mu.Lock()
	c.hotels = AppendHotel(c.hotels, h)
	c.draft = domain.HotelDraft{}
	c.mu.Unlock()

	log.Info().Int64("hotel_id", h.ID).Str("name", h.Name).Msg("hotel created")
	return h, imgErr
}

// Creating reports whether a create is in flight.
func (c *HotelCollection) Creating() bool { return c.creating.Busy() }
