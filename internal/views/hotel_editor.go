package views

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
)

// HotelForm is the editable state of a hotel.
type HotelForm struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Address     domain.Address `json:"address"`
	AmenityIDs  []int64        `json:"amenity_ids"`
	Images      []domain.Image `json:"images"`
}

type HotelEditorModel struct {
	Form      HotelForm         `json:"form"`
	Catalogue []domain.Amenity  `json:"catalogue"`
	Errors    map[string]string `json:"errors,omitempty"`
	Saving    bool              `json:"saving"`
}

type HotelEditor struct {
	life *Lifecycle
	deps Deps
	id   int64

	form      *app.State[HotelForm]
	catalogue []domain.Amenity
	errs      *app.State[map[string]string]

	saving app.Control
	upload app.Control
	images app.ControlSet
}

// OpenHotelEditor loads the amenity catalogue and the hotel. Failure
// redirects to the dashboard.
func OpenHotelEditor(ctx context.Context, deps Deps, id int64) (*HotelEditor, error) {
	v := &HotelEditor{life: Mount(ctx, "hotel-editor"), deps: deps, id: id}

	var h domain.Hotel
	err := app.FetchAll(v.life.Context(),
		func(ctx context.Context) (err error) { v.catalogue, err = deps.API.HotelAmenities(ctx); return },
		func(ctx context.Context) (err error) { h, err = deps.API.GetHotel(ctx, id); return },
	)
	if err != nil {
		v.life.Unmount()
		return nil, &MountError{View: "hotel-editor", Redirect: app.DashboardRoute, Err: err}
	}
	v.form = app.NewState(HotelForm{
		Name:        h.Name,
		Description: h.Description,
		Address:     h.Address,
		AmenityIDs:  app.AmenityIDs(h.Amenities),
		Images:      h.Images,
	})
	v.errs = app.NewState[map[string]string](nil)
	return v, nil
}

func (v *HotelEditor) Close() { v.life.Unmount() }

func (v *HotelEditor) Model() HotelEditorModel {
	return HotelEditorModel{
		Form:      v.form.Get(),
		Catalogue: v.catalogue,
		Errors:    v.errs.Get(),
		Saving:    v.saving.Busy(),
	}
}

// Edit replaces the text fields; amenities and images have their own actions.
func (v *HotelEditor) Edit(name, description string, addr domain.Address) {
	v.form.Update(func(f HotelForm) HotelForm {
		f.Name, f.Description, f.Address = name, description, addr
		return f
	})
}

// SetAmenities replaces the selected amenities wholesale.
func (v *HotelEditor) SetAmenities(ids []int64) {
	v.form.Update(func(f HotelForm) HotelForm {
		f.AmenityIDs = append([]int64(nil), ids...)
		return f
	})
}

// UploadImages uploads files one by one, appending each image as it lands.
// It stops at the first failure; images already uploaded stay.
func (v *HotelEditor) UploadImages(files []domain.Upload) error {
	if !v.upload.Acquire() {
		return domain.ErrInFlight
	}
	defer v.upload.Release()

	for _, f := range files {
		var img domain.Image
		err := app.Execute(v.life.Context(), nil, v.deps.notifier(), v.form, app.Command[HotelForm]{
			Name: "upload-hotel-image",
			Issue: func(ctx context.Context) (err error) {
				img, err = v.deps.API.UploadHotelImage(ctx, v.id, f)
				return
			},
			Apply: func(hf HotelForm) HotelForm {
				hf.Images = app.AppendImage(hf.Images, img)
				return hf
			},
			Failure: "Could not upload " + f.Filename,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (v *HotelEditor) DeleteImage(imageID int64) error {
	return app.Execute(v.life.Context(), v.images.For(imageID), v.deps.notifier(), v.form, app.Command[HotelForm]{
		Name:  "delete-hotel-image",
		Issue: func(ctx context.Context) error { return v.deps.API.DeleteHotelImage(ctx, imageID) },
		Apply: func(f HotelForm) HotelForm {
			f.Images = app.WithoutImage(f.Images, imageID)
			return f
		},
		Failure: "Could not delete image",
	})
}

// Save writes the hotel. confirmed must carry the owner's answer to the
// "save changes?" prompt; without it nothing is sent. Backend field errors are
// kept for inline display and returned as *domain.ValidationError.
func (v *HotelEditor) Save(confirmed bool) (domain.Hotel, error) {
	if !confirmed {
		return domain.Hotel{}, domain.ErrNotConfirmed
	}
	if !v.saving.Acquire() {
		return domain.Hotel{}, domain.ErrInFlight
	}
	defer v.saving.Release()

	f := v.form.Get()
	if err := app.Validate(f); err != nil {
		v.setErrors(err)
		return domain.Hotel{}, err
	}
	v.errs.Set(nil)

	upd := domain.HotelUpdate{
		HotelData:  domain.HotelInput{Name: f.Name, Description: f.Description, Address: f.Address},
		AmenityIDs: f.AmenityIDs,
	}
	if upd.AmenityIDs == nil {
		upd.AmenityIDs = []int64{}
	}
	h, err := v.deps.API.UpdateHotel(v.life.Context(), v.id, upd)
	if !v.life.Alive() {
		return domain.Hotel{}, domain.ErrUnmounted
	}
	if err != nil {
		log.Warn().Err(err).Int64("hotel_id", v.id).Msg("save hotel failed")
		ferr := formError(err, "Could not save hotel")
		v.setErrors(ferr)
		return domain.Hotel{}, ferr
	}
	v.deps.notifier().Add(domain.KindSuccess, "Hotel saved")
	return h, nil
}

func (v *HotelEditor) setErrors(err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		v.errs.Set(ve.Fields)
	}
}
