package views

import (
	"context"

	"github.com/rs/zerolog/log"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
)

type HotelDetailModel struct {
	Hotel     domain.Hotel      `json:"hotel"`
	Rooms     []domain.Room     `json:"rooms"`
	Amenities []domain.Amenity  `json:"amenities"`
	Stats     StatsPanel        `json:"stats"`
	Bookings  BookingFeedModel  `json:"bookings"`
	Delete    DeletePromptModel `json:"delete"`
}

type DeletePromptModel struct {
	Step      int    `json:"step"`
	Remaining int    `json:"remaining"`
	Prompt    string `json:"prompt"`
}

type hotelPage struct {
	hotel     domain.Hotel
	rooms     []domain.Room
	amenities []domain.Amenity
	stats     domain.HotelStats
}

// HotelDetail is the per-hotel screen: images, rooms, amenities, stats and
// the bookings feed, plus the destructive delete behind a confirmation gate.
type HotelDetail struct {
	life *Lifecycle
	deps Deps
	id   int64

	page     *app.State[hotelPage]
	Bookings *BookingFeed

	images   app.ControlSet
	rooms    app.ControlSet
	upload   app.Control
	deleting app.Control
	gate     *app.ConfirmationGate
}

// OpenHotelDetail loads the hotel, its rooms, its stats and the amenity
// catalogue together. Any failure fails the whole mount.
func OpenHotelDetail(ctx context.Context, deps Deps, id int64) (*HotelDetail, error) {
	v := &HotelDetail{
		life: Mount(ctx, "hotel-detail"),
		deps: deps,
		id:   id,
		gate: app.NewConfirmationGate(app.DeleteConfirmations),
	}

	var p hotelPage
	var catalogue []domain.Amenity
	err := app.FetchAll(v.life.Context(),
		func(ctx context.Context) (err error) { p.hotel, err = deps.API.GetHotel(ctx, id); return },
		func(ctx context.Context) (err error) { p.rooms, err = deps.API.ListRooms(ctx, id); return },
		func(ctx context.Context) (err error) { p.stats, err = deps.API.HotelStats(ctx, id); return },
		func(ctx context.Context) (err error) { catalogue, err = deps.API.HotelAmenities(ctx); return },
	)
	if err != nil {
		v.life.Unmount()
		log.Warn().Err(err).Int64("hotel_id", id).Msg("hotel detail mount failed")
		return nil, &MountError{View: "hotel-detail", Redirect: app.DashboardRoute, Err: err}
	}
	p.amenities = app.FilterAmenities(catalogue, p.hotel.Amenities)
	v.page = app.NewState(p)
	v.Bookings = NewBookingFeed(v.life.Context(), deps.API, deps.notifier(), id)
	return v, nil
}

func (v *HotelDetail) Close() { v.life.Unmount() }

func (v *HotelDetail) Model() HotelDetailModel {
	p := v.page.Get()
	return HotelDetailModel{
		Hotel:     p.hotel,
		Rooms:     p.rooms,
		Amenities: p.amenities,
		Stats:     BuildStatsPanel(p.stats),
		Bookings:  v.Bookings.Model(),
		Delete: DeletePromptModel{
			Step:      v.gate.Step(),
			Remaining: v.gate.Remaining(),
			Prompt:    v.gate.Prompt(),
		},
	}
}

// DeleteImage removes one image and patches it out of the hotel locally.
func (v *HotelDetail) DeleteImage(imageID int64) error {
	return app.Execute(v.life.Context(), v.images.For(imageID), v.deps.notifier(), v.page, app.Command[hotelPage]{
		Name:  "delete-hotel-image",
		Issue: func(ctx context.Context) error { return v.deps.API.DeleteHotelImage(ctx, imageID) },
		Apply: func(p hotelPage) hotelPage {
			p.hotel = app.HotelWithoutImage(p.hotel, imageID)
			return p
		},
		Success: "Image deleted",
		Failure: "Could not delete image",
	})
}

// UploadImage adds an image, then re-fetches the hotel to pick up the new list.
func (v *HotelDetail) UploadImage(f domain.Upload) error {
	var fresh domain.Hotel
	return app.Execute(v.life.Context(), &v.upload, v.deps.notifier(), v.page, app.Command[hotelPage]{
		Name: "upload-hotel-image",
		Issue: func(ctx context.Context) error {
			if _, err := v.deps.API.UploadHotelImage(ctx, v.id, f); err != nil {
				return err
			}
			var err error
			fresh, err = v.deps.API.GetHotel(ctx, v.id)
			return err
		},
		Apply: func(p hotelPage) hotelPage {
			p.hotel = fresh
			return p
		},
		Success: "Image uploaded",
		Failure: "Could not upload image",
	})
}

func (v *HotelDetail) DeleteRoom(roomID int64) error {
	return app.Execute(v.life.Context(), v.rooms.For(roomID), v.deps.notifier(), v.page, app.Command[hotelPage]{
		Name:  "delete-room",
		Issue: func(ctx context.Context) error { return v.deps.API.DeleteRoom(ctx, roomID) },
		Apply: func(p hotelPage) hotelPage {
			p.rooms = app.WithoutRoom(p.rooms, roomID)
			return p
		},
		Success: "Room deleted",
		Failure: "Could not delete room",
	})
}

// RequestDelete records one answer to the delete prompt. Declining resets the
// gate. The DELETE call is issued only on the final confirmation, in which
// case deleted is true and the caller navigates to the dashboard.
func (v *HotelDetail) RequestDelete(confirm bool) (deleted bool, err error) {
	if !confirm {
		v.gate.Reset()
		return false, nil
	}
	if !v.gate.Confirm() {
		return false, nil
	}
	if !v.deleting.Acquire() {
		return false, domain.ErrInFlight
	}
	defer v.deleting.Release()

	err = v.deps.API.DeleteHotel(v.life.Context(), v.id)
	if !v.life.Alive() {
		return false, domain.ErrUnmounted
	}
	if err != nil {
		log.Warn().Err(err).Int64("hotel_id", v.id).Msg("delete hotel failed")
		v.deps.notifier().Add(domain.KindError, domain.UserMessage(err, "Could not delete hotel"))
		return false, err
	}
	if v.deps.Hotels != nil {
		v.deps.Hotels.Remove(v.id)
	}
	v.deps.notifier().Add(domain.KindSuccess, "Hotel deleted")
	log.Info().Int64("hotel_id", v.id).Msg("hotel deleted")
	return true, nil
}
