package views

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
)

// ErrRoomNotSaved: images can only be attached to a room that exists.
var ErrRoomNotSaved = errors.New("save the room before adding images")

type RoomEditorModel struct {
	Room      domain.Room       `json:"room"`
	Images    []domain.Image    `json:"images"`
	Catalogue []domain.Amenity  `json:"catalogue"`
	Errors    map[string]string `json:"errors,omitempty"`
	Saving    bool              `json:"saving"`
}

type roomPage struct {
	room   domain.Room
	images []domain.Image
}

// RoomEditor creates a room (roomID 0) or edits an existing one.
type RoomEditor struct {
	life *Lifecycle
	deps Deps

	page      *app.State[roomPage]
	catalogue []domain.Amenity
	errs      *app.State[map[string]string]

	saving app.Control
	upload app.Control
	images app.ControlSet
}

func OpenRoomEditor(ctx context.Context, deps Deps, hotelID, roomID int64) (*RoomEditor, error) {
	v := &RoomEditor{life: Mount(ctx, "room-editor"), deps: deps}

	p := roomPage{room: domain.Room{HotelID: hotelID, RoomType: domain.DefaultRoomType, Places: 1}}
	fetches := []func(context.Context) error{
		func(ctx context.Context) (err error) { v.catalogue, err = deps.API.RoomAmenities(ctx); return },
	}
	if roomID != 0 {
		fetches = append(fetches,
			func(ctx context.Context) (err error) { p.room, err = deps.API.GetRoom(ctx, roomID); return },
			func(ctx context.Context) (err error) { p.images, err = deps.API.ListRoomImages(ctx, roomID); return },
		)
	}
	if err := app.FetchAll(v.life.Context(), fetches...); err != nil {
		v.life.Unmount()
		return nil, &MountError{View: "room-editor", Redirect: app.DashboardRoute, Err: err}
	}
	if p.room.RoomType == "" {
		p.room.RoomType = domain.DefaultRoomType
	}
	p.room.AmenityIDs = app.AmenityIDs(p.room.Amenities)
	v.page = app.NewState(p)
	v.errs = app.NewState[map[string]string](nil)
	return v, nil
}

func (v *RoomEditor) Close() { v.life.Unmount() }

func (v *RoomEditor) Model() RoomEditorModel {
	p := v.page.Get()
	return RoomEditorModel{
		Room:      p.room,
		Images:    p.images,
		Catalogue: v.catalogue,
		Errors:    v.errs.Get(),
		Saving:    v.saving.Busy(),
	}
}

// Edit replaces the editable fields of the room, keeping its identity and amenities.
func (v *RoomEditor) Edit(r domain.Room) {
	v.page.Update(func(p roomPage) roomPage {
		p.room.RoomNumber = r.RoomNumber
		p.room.RoomType = r.RoomType
		if p.room.RoomType == "" {
			p.room.RoomType = domain.DefaultRoomType
		}
		p.room.Places = r.Places
		p.room.PricePerNight = r.PricePerNight
		p.room.Description = r.Description
		return p
	})
}

func (v *RoomEditor) SetAmenities(ids []int64) {
	v.page.Update(func(p roomPage) roomPage {
		p.room.AmenityIDs = append([]int64(nil), ids...)
		return p
	})
}

// Save creates or updates the room. After a create the editor switches to
// editing the new room so images can be attached.
func (v *RoomEditor) Save() (domain.Room, error) {
	if !v.saving.Acquire() {
		return domain.Room{}, domain.ErrInFlight
	}
	defer v.saving.Release()

	r := v.page.Get().room
	if err := app.Validate(r); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			v.errs.Set(ve.Fields)
		}
		return domain.Room{}, err
	}
	v.errs.Set(nil)

	payload := r
	payload.Amenities = nil
	if payload.AmenityIDs == nil {
		payload.AmenityIDs = []int64{}
	}

	var (
		saved domain.Room
		err   error
	)
	if r.ID != 0 {
		saved, err = v.deps.API.UpdateRoom(v.life.Context(), r.ID, payload)
	} else {
		saved, err = v.deps.API.CreateRoom(v.life.Context(), payload)
	}
	if !v.life.Alive() {
		return domain.Room{}, domain.ErrUnmounted
	}
	if err != nil {
		log.Warn().Err(err).Int64("hotel_id", r.HotelID).Msg("save room failed")
		ferr := formError(err, "Could not save room")
		var ve *domain.ValidationError
		if errors.As(ferr, &ve) {
			v.errs.Set(ve.Fields)
		}
		return domain.Room{}, ferr
	}

	if saved.ID == 0 {
		saved.ID = r.ID
	}
	saved.AmenityIDs = payload.AmenityIDs
	v.page.Update(func(p roomPage) roomPage {
		p.room = saved
		return p
	})
	v.deps.notifier().Add(domain.KindSuccess, "Room saved")
	return saved, nil
}

func (v *RoomEditor) UploadImage(f domain.Upload) error {
	roomID := v.page.Get().room.ID
	if roomID == 0 {
		return ErrRoomNotSaved
	}
	var img domain.Image
	return app.Execute(v.life.Context(), &v.upload, v.deps.notifier(), v.page, app.Command[roomPage]{
		Name: "upload-room-image",
		Issue: func(ctx context.Context) (err error) {
			img, err = v.deps.API.UploadRoomImage(ctx, roomID, f)
			return
		},
		Apply: func(p roomPage) roomPage {
			p.images = app.AppendImage(p.images, img)
			return p
		},
		Failure: "Could not upload image",
	})
}

// DeleteImage removes one image; each image has its own in-flight guard.
func (v *RoomEditor) DeleteImage(imageID int64) error {
	return app.Execute(v.life.Context(), v.images.For(imageID), v.deps.notifier(), v.page, app.Command[roomPage]{
		Name:  "delete-room-image",
		Issue: func(ctx context.Context) error { return v.deps.API.DeleteRoomImage(ctx, imageID) },
		Apply: func(p roomPage) roomPage {
			p.images = app.WithoutImage(p.images, imageID)
			return p
		},
		Failure: "Could not delete image",
	})
}
