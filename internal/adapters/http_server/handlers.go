package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
	"hotelhub/internal/views"
)

// Handlers serves the console. Views that keep state between requests (the
// dashboard, hotel detail pages with their booking feeds and delete prompts)
// stay mounted until replaced, logout, or Close.
type Handlers struct {
	deps    views.Deps
	notes   *app.NotificationQueue
	alerts  *app.AlertBox
	mapsKey string

	root   context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	dash    *views.Dashboard
	details map[int64]*views.HotelDetail
}

func NewHandlers(deps views.Deps, notes *app.NotificationQueue, alerts *app.AlertBox, mapsKey string) *Handlers {
	root, cancel := context.WithCancel(context.Background())
	if deps.Notes == nil {
		deps.Notes = notes
	}
	if deps.Alerts == nil {
		deps.Alerts = alerts
	}
	return &Handlers{
		deps:    deps,
		notes:   notes,
		alerts:  alerts,
		mapsKey: mapsKey,
		root:    root,
		cancel:  cancel,
		details: map[int64]*views.HotelDetail{},
	}
}

// Close unmounts every open view.
func (h *Handlers) Close() {
	h.unmountAll()
	h.cancel()
}

func (h *Handlers) unmountAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dash != nil {
		h.dash.Close()
		h.dash = nil
	}
	for id, d := range h.details {
		d.Close()
		delete(h.details, id)
	}
}

type problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.home)
	s.mux.Post(app.LoginRoute, h.login)
	s.mux.Post("/register", h.register)
	s.mux.Post("/logout", h.logout)

	s.mux.Group(func(r chi.Router) {
		r.Use(RequireSession(h.deps.Session))

		r.Get("/notifications", h.listNotifications)
		r.Delete("/notifications/{id}", h.dismissNotification)

		r.Get(app.DashboardRoute, h.dashboard)
		r.Put("/dashboard/draft", h.editDraft)
		r.Delete("/dashboard/draft", h.cancelDraft)
		r.Post("/dashboard/hotels", h.createHotel)

		r.Get("/hotels/{id}", h.hotelDetail)
		r.Post("/hotels/{id}/images", h.uploadHotelImage)
		r.Delete("/hotels/{id}/images/{imageID}", h.deleteHotelImage)
		r.Delete("/hotels/{id}/rooms/{roomID}", h.deleteRoom)
		r.Post("/hotels/{id}/delete", h.deleteHotel)
		r.Get("/hotels/{id}/edit", h.hotelEditor)
		r.Put("/hotels/{id}/edit", h.saveHotel)
		r.Post("/hotels/{id}/edit/images", h.uploadEditorImages)
		r.Delete("/hotels/{id}/edit/images/{imageID}", h.deleteEditorImage)
		r.Post("/hotels/{id}/rooms", h.saveRoom)
		r.Get("/hotels/{id}/rooms/{roomID}", h.getRoom)
		r.Put("/hotels/{id}/rooms/{roomID}", h.saveRoom)
		r.Post("/hotels/{id}/rooms/{roomID}/images", h.uploadRoomImage)
		r.Delete("/hotels/{id}/rooms/{roomID}/images/{imageID}", h.deleteRoomImage)

		r.Get("/hotels/{id}/bookings", h.bookings)
		r.Post("/hotels/{id}/bookings/more", h.moreBookings)
		r.Post("/bookings/{id}/{action}", h.bookingAction)

		r.Get("/hotels/{id}/employees", h.employees)
		r.Post("/hotels/{id}/employees", h.saveEmployee)
		r.Delete("/hotels/{id}/employees/{employeeID}", h.fireEmployee)
		r.Get("/hotels/{id}/employees/{employeeID}/salary-history", h.salaryHistory)

		r.Get("/profile", h.profile)
		r.Put("/profile", h.updateProfile)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemFields(w, status, title, detail, nil)
}

func writeProblemFields(w http.ResponseWriter, status int, title, detail string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	p := problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Errors: fields}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps an action's error to a response. Failed mounts redirect.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if to := views.RedirectFor(err); to != "" {
		http.Redirect(w, r, to, http.StatusSeeOther)
		return
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeProblemFields(w, http.StatusUnprocessableEntity, "Invalid input", "", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, domain.ErrInFlight), errors.Is(err, domain.ErrNotAllowed),
		errors.Is(err, domain.ErrUnmounted), errors.Is(err, views.ErrRoomNotSaved):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
		return
	case errors.Is(err, domain.ErrNotConfirmed):
		writeProblem(w, http.StatusPreconditionRequired, "Confirmation required", err.Error())
		return
	}
	var ae *domain.APIError
	if errors.As(err, &ae) {
		switch ae.Kind {
		case domain.KindRejected:
			writeProblem(w, ae.Status, http.StatusText(ae.Status), ae.Error())
		default:
			writeProblem(w, http.StatusBadGateway, "Backend unavailable", ae.Error())
		}
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal view model")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON writes a view model. GETs carry an ETag and may answer 304.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	writeBody(w, r, status, v, true)
}

// writeUncached is writeJSON for responses that consume state when built;
// they are never answered with 304.
func writeUncached(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Cache-Control", "no-store")
	writeBody(w, r, status, v, false)
}

func writeBody(w http.ResponseWriter, r *http.Request, status int, v any, etagged bool) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if etagged && r.Method == http.MethodGet && etag != "" {
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &domain.ValidationError{Fields: map[string]string{"body": "is not valid JSON"}}
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// ---- public ----

type homeModel struct {
	Authenticated bool                `json:"authenticated"`
	Session       string              `json:"session"`
	Owner         *domain.UserProfile `json:"owner,omitempty"`
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	s := h.deps.Session
	writeJSON(w, r, http.StatusOK, homeModel{
		Authenticated: s.IsAuthenticated(),
		Session:       s.State().String(),
		Owner:         s.User(),
	})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var f app.LoginForm
	if err := decodeBody(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	if err := views.Login(r.Context(), h.deps.Session, f); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, app.DashboardRoute, http.StatusSeeOther)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var f app.RegisterForm
	if err := decodeBody(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	if err := views.Register(r.Context(), h.deps.Session, f); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, app.DashboardRoute, http.StatusSeeOther)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.unmountAll()
	if err := h.deps.Session.Logout(r.Context()); err != nil {
		log.Error().Err(err).Msg("logout")
	}
	http.Redirect(w, r, app.LoginRoute, http.StatusSeeOther)
}

// ---- notifications ----

type notificationsModel struct {
	Notifications []domain.Notification `json:"notifications"`
	Alerts        []string              `json:"alerts"`
}

func (h *Handlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	// Take drains the alerts, so this response must always carry a body
	writeUncached(w, r, http.StatusOK, notificationsModel{Notifications: h.notes.List(), Alerts: h.alerts.Take()})
}

func (h *Handlers) dismissNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	h.notes.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}
