package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
	"hotelhub/internal/views"
)

const maxUpload = 16 << 20

// ---- dashboard ----

type dashboardResponse struct {
	views.DashboardModel
	MapsKey string `json:"maps_key,omitempty"`
}

// remountDashboard replaces the dashboard view, re-fetching the hotel list.
func (h *Handlers) remountDashboard() *views.Dashboard {
	d := views.OpenDashboard(h.root, h.deps)
	h.mu.Lock()
	if h.dash != nil {
		h.dash.Close()
	}
	h.dash = d
	h.mu.Unlock()
	return d
}

func (h *Handlers) dashboardView() *views.Dashboard {
	h.mu.Lock()
	d := h.dash
	h.mu.Unlock()
	if d != nil {
		return d
	}
	return h.remountDashboard()
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	d := h.remountDashboard()
	writeJSON(w, r, http.StatusOK, dashboardResponse{DashboardModel: d.Model(), MapsKey: h.mapsKey})
}

func (h *Handlers) editDraft(w http.ResponseWriter, r *http.Request) {
	var patch domain.DraftPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	d := h.dashboardView()
	d.EditDraft(patch)
	writeJSON(w, r, http.StatusOK, d.Model().Draft)
}

func (h *Handlers) cancelDraft(w http.ResponseWriter, r *http.Request) {
	h.dashboardView().CancelDraft()
	w.WriteHeader(http.StatusNoContent)
}

// createHotel submits the draft. A multipart body may carry the cover image
// in field "file"; a JSON body is merged into the draft first.
func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	d := h.dashboardView()
	if up, ok, err := formFile(r); err != nil {
		writeError(w, r, err)
		return
	} else if ok {
		d.EditDraft(domain.DraftPatch{Image: &up})
	} else if r.ContentLength > 0 {
		var patch domain.DraftPatch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, r, err)
			return
		}
		d.EditDraft(patch)
	}
	card, err := d.CreateHotel()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

// formFile reads the "file" part of a multipart request. ok is false for
// non-multipart requests.
func formFile(r *http.Request) (domain.Upload, bool, error) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return domain.Upload{}, false, nil
		}
		return domain.Upload{}, false, &domain.ValidationError{Fields: map[string]string{"file": "could not read upload"}}
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return domain.Upload{}, false, &domain.ValidationError{Fields: map[string]string{"file": "is required"}}
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return domain.Upload{}, false, err
	}
	return domain.Upload{Filename: hdr.Filename, Content: b}, true, nil
}

// formFiles reads every "file" part of a multipart request; at least one is required.
func formFiles(r *http.Request) ([]domain.Upload, error) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return nil, &domain.ValidationError{Fields: map[string]string{"file": "could not read upload"}}
	}
	hdrs := r.MultipartForm.File["file"]
	if len(hdrs) == 0 {
		return nil, &domain.ValidationError{Fields: map[string]string{"file": "is required"}}
	}
	ups := make([]domain.Upload, 0, len(hdrs))
	for _, hdr := range hdrs {
		f, err := hdr.Open()
		if err != nil {
			return nil, err
		}
		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		ups = append(ups, domain.Upload{Filename: hdr.Filename, Content: b})
	}
	return ups, nil
}

// ---- hotel detail ----

// remountDetail opens a fresh detail view for id, replacing any open one.
func (h *Handlers) remountDetail(id int64) (*views.HotelDetail, error) {
	v, err := views.OpenHotelDetail(h.root, h.deps, id)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	if old := h.details[id]; old != nil {
		old.Close()
	}
	h.details[id] = v
	h.mu.Unlock()
	return v, nil
}

func (h *Handlers) detailView(r *http.Request) (*views.HotelDetail, error) {
	id, ok := idParam(r, "id")
	if !ok {
		return nil, domain.ErrNotFound
	}
	h.mu.Lock()
	v := h.details[id]
	h.mu.Unlock()
	if v != nil {
		return v, nil
	}
	return h.remountDetail(id)
}

func (h *Handlers) forgetDetail(id int64) {
	h.mu.Lock()
	if v := h.details[id]; v != nil {
		v.Close()
		delete(h.details, id)
	}
	h.mu.Unlock()
}

func (h *Handlers) hotelDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	v, err := h.remountDetail(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, v.Model())
}

func (h *Handlers) uploadHotelImage(w http.ResponseWriter, r *http.Request) {
	v, err := h.detailView(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	up, ok, err := formFile(r)
	if err == nil && !ok {
		err = &domain.ValidationError{Fields: map[string]string{"file": "is required"}}
	}
	if err == nil {
		err = v.UploadImage(up)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, v.Model().Hotel.Images)
}

func (h *Handlers) deleteHotelImage(w http.ResponseWriter, r *http.Request) {
	h.detailAction(w, r, "imageID", (*views.HotelDetail).DeleteImage)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	h.detailAction(w, r, "roomID", (*views.HotelDetail).DeleteRoom)
}

func (h *Handlers) detailAction(w http.ResponseWriter, r *http.Request, param string, act func(*views.HotelDetail, int64) error) {
	v, err := h.detailView(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sub, ok := idParam(r, param)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", param+" must be a number")
		return
	}
	if err := act(v, sub); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type deleteAnswer struct {
	Confirm bool `json:"confirm"`
}

type deleteResult struct {
	Deleted bool                    `json:"deleted"`
	Prompt  views.DeletePromptModel `json:"prompt"`
}

// deleteHotel takes one answer to the delete prompt per call.
func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	v, err := h.detailView(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var a deleteAnswer
	if err := decodeBody(r, &a); err != nil {
		writeError(w, r, err)
		return
	}
	deleted, err := v.RequestDelete(a.Confirm)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if deleted {
		id, _ := idParam(r, "id")
		h.forgetDetail(id)
		http.Redirect(w, r, app.DashboardRoute, http.StatusSeeOther)
		return
	}
	writeJSON(w, r, http.StatusOK, deleteResult{Prompt: v.Model().Delete})
}

// ---- editors ----

func (h *Handlers) hotelEditor(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r, "id")
	v, err := views.OpenHotelEditor(r.Context(), h.deps, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()
	writeJSON(w, r, http.StatusOK, v.Model())
}

func (h *Handlers) saveHotel(w http.ResponseWriter, r *http.Request) {
	var f views.HotelForm
	if err := decodeBody(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	id, _ := idParam(r, "id")
	v, err := views.OpenHotelEditor(r.Context(), h.deps, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()

	v.Edit(f.Name, f.Description, f.Address)
	if f.AmenityIDs != nil {
		v.SetAmenities(f.AmenityIDs)
	}
	hotel, err := v.Save(r.URL.Query().Get("confirm") == "true")
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.forgetDetail(id)
	writeJSON(w, r, http.StatusOK, hotel)
}

func (h *Handlers) saveRoom(w http.ResponseWriter, r *http.Request) {
	var room domain.Room
	if err := decodeBody(r, &room); err != nil {
		writeError(w, r, err)
		return
	}
	hotelID, _ := idParam(r, "id")
	roomID, _ := idParam(r, "roomID")
	v, err := views.OpenRoomEditor(r.Context(), h.deps, hotelID, roomID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()

	v.Edit(room)
	v.SetAmenities(room.AmenityIDs)
	saved, err := v.Save()
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.forgetDetail(hotelID)
	status := http.StatusOK
	if roomID == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, saved)
}

func (h *Handlers) hotelImageEditor(r *http.Request) (*views.HotelEditor, error) {
	id, ok := idParam(r, "id")
	if !ok {
		return nil, domain.ErrNotFound
	}
	return views.OpenHotelEditor(r.Context(), h.deps, id)
}

// uploadEditorImages takes one or more "file" parts and uploads them in order.
func (h *Handlers) uploadEditorImages(w http.ResponseWriter, r *http.Request) {
	ups, err := formFiles(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.hotelImageEditor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()
	if err := v.UploadImages(ups); err != nil {
		writeError(w, r, err)
		return
	}
	id, _ := idParam(r, "id")
	h.forgetDetail(id)
	writeJSON(w, r, http.StatusCreated, v.Model().Form.Images)
}

func (h *Handlers) deleteEditorImage(w http.ResponseWriter, r *http.Request) {
	imageID, ok := idParam(r, "imageID")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "imageID must be a number")
		return
	}
	v, err := h.hotelImageEditor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()
	if err := v.DeleteImage(imageID); err != nil {
		writeError(w, r, err)
		return
	}
	id, _ := idParam(r, "id")
	h.forgetDetail(id)
	w.WriteHeader(http.StatusNoContent)
}

// roomEditor opens the editor for {roomID}; "new" opens a blank room.
func (h *Handlers) roomEditor(r *http.Request) (*views.RoomEditor, error) {
	hotelID, ok := idParam(r, "id")
	if !ok {
		return nil, domain.ErrNotFound
	}
	var roomID int64
	if chi.URLParam(r, "roomID") != "new" {
		if roomID, ok = idParam(r, "roomID"); !ok {
			return nil, domain.ErrNotFound
		}
	}
	return views.OpenRoomEditor(r.Context(), h.deps, hotelID, roomID)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	v, err := h.roomEditor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()
	writeJSON(w, r, http.StatusOK, v.Model())
}

func (h *Handlers) uploadRoomImage(w http.ResponseWriter, r *http.Request) {
	up, ok, err := formFile(r)
	if err == nil && !ok {
		err = &domain.ValidationError{Fields: map[string]string{"file": "is required"}}
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.roomEditor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()
	if err := v.UploadImage(up); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, v.Model().Images)
}

func (h *Handlers) deleteRoomImage(w http.ResponseWriter, r *http.Request) {
	imageID, ok := idParam(r, "imageID")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "imageID must be a number")
		return
	}
	v, err := h.roomEditor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()
	if err := v.DeleteImage(imageID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- bookings ----

func (h *Handlers) bookings(w http.ResponseWriter, r *http.Request) {
	v, err := h.detailView(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !v.Bookings.Loaded() {
		if err := v.Bookings.More(); err != nil {
			log.Warn().Err(err).Msg("first bookings page")
		}
	}
	writeJSON(w, r, http.StatusOK, v.Bookings.Model())
}

func (h *Handlers) moreBookings(w http.ResponseWriter, r *http.Request) {
	v, err := h.detailView(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := v.Bookings.More(); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, v.Bookings.Model())
}

// bookingAction finds the open feed holding the booking and applies action.
func (h *Handlers) bookingAction(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var act func(*views.BookingFeed, int64) error
	switch chi.URLParam(r, "action") {
	case "confirm-cash":
		act = (*views.BookingFeed).ConfirmCash
	case "cancel-cash":
		act = (*views.BookingFeed).CancelCash
	case "refund":
		act = (*views.BookingFeed).Refund
	default:
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown booking action")
		return
	}

	var feed *views.BookingFeed
	h.mu.Lock()
	for _, d := range h.details {
		if d.Bookings.Has(id) {
			feed = d.Bookings
			break
		}
	}
	h.mu.Unlock()
	if feed == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "booking is not on an open page")
		return
	}
	if err := act(feed, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, feed.Model())
}

// ---- employees ----

func (h *Handlers) roster(r *http.Request) (*views.EmployeeRoster, error) {
	id, ok := idParam(r, "id")
	if !ok {
		return nil, domain.ErrNotFound
	}
	return views.OpenEmployeeRoster(r.Context(), h.deps, id)
}

func (h *Handlers) employees(w http.ResponseWriter, r *http.Request) {
	v, err := h.roster(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()
	writeJSON(w, r, http.StatusOK, v.Model())
}

func (h *Handlers) saveEmployee(w http.ResponseWriter, r *http.Request) {
	var e domain.Employee
	if err := decodeBody(r, &e); err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.roster(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()
	if err := v.Save(e); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, v.Model())
}

func (h *Handlers) fireEmployee(w http.ResponseWriter, r *http.Request) {
	v, err := h.roster(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()
	eid, ok := idParam(r, "employeeID")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "employeeID must be a number")
		return
	}
	if err := v.Fire(eid); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) salaryHistory(w http.ResponseWriter, r *http.Request) {
	v, err := h.roster(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer v.Close()
	eid, _ := idParam(r, "employeeID")
	recs, err := v.SalaryHistory(eid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, recs)
}

// ---- profile ----

type profileRequest struct {
	Tab views.ProfileTab `json:"tab"`
	views.ProfileForm
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	v := views.OpenProfileEditor(r.Context(), h.deps)
	defer v.Close()
	writeJSON(w, r, http.StatusOK, v.Model())
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	v := views.OpenProfileEditor(r.Context(), h.deps)
	defer v.Close()
	v.SelectTab(req.Tab)
	v.Edit(req.ProfileForm)
	if err := v.Submit(); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, v.Model())
}
