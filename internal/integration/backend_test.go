//go:build integration || !unit

package integration

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"hotelhub/internal/domain"
)

// fakeBackend speaks the subset of the HotelHub REST contract the console uses.
type fakeBackend struct {
	mu       sync.Mutex
	owners   map[string]domain.UserProfile // by token
	hotels     map[int64]domain.Hotel
	rooms      map[int64]domain.Room
	roomImages map[int64][]domain.Image
	bookings   map[int64][]domain.Booking
	nextID     int64
	nextRoom   int64
	nextImage  int64
	calls      map[string]int
}

// statsBody is a full stats payload as the backend sends it.
const statsBody = `{
 "general":{"total_rooms":1,"active_bookings":1,"completed_bookings":0,"cancelled_bookings":0,"occupancy":0.25},
 "financials":{"income_card":100,"income_cash":20,"net_income":120,"salary_expenses":0,"income_minus_salaries":120,
  "avg_booking_price":120,"min_booking_price":120,"max_booking_price":120},
 "dynamics":{"daily_income":[{"date":"2025-01-01","total":120}],"weekly_bookings":[{"week":"2025-W01","count":1}],
  "payment_distribution":{"card":100,"cash":20},"room_type_popularity":[{"type":"standard","count":1}]},
 "clients":{"unique":1,"top":[{"id":5,"name":"Guest","total_spent":120}]},
 "engagement":{"total_views":10,"favorites":1,"average_rating":4}
}`

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		owners:   map[string]domain.UserProfile{},
		hotels:     map[int64]domain.Hotel{},
		rooms:      map[int64]domain.Room{},
		roomImages: map[int64][]domain.Image{},
		bookings:   map[int64][]domain.Booking{},
		calls:      map[string]int{},
	}
}

func (b *fakeBackend) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[name]
}

func (b *fakeBackend) seedBookings(hotelID int64, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := make([]domain.Booking, n)
	for i := range rows {
		rows[i] = domain.Booking{
			BookingID: int64(1000 + i), RoomNumber: "101", ClientName: "Guest",
			Amount: 120, Status: domain.StatusAwaitingConfirmation,
		}
	}
	b.bookings[hotelID] = rows
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) owner(r *http.Request) (domain.UserProfile, bool) {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.owners[tok]
	return u, ok
}

func (b *fakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := b.owner(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		next(w, r)
	}
}

func (b *fakeBackend) hit(name string) {
	b.mu.Lock()
	b.calls[name]++
	b.mu.Unlock()
}

// readImage takes the multipart "file" part and assigns the next image id.
func (b *fakeBackend) readImage(w http.ResponseWriter, r *http.Request) (domain.Image, bool) {
	_, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "file is required"})
		return domain.Image{}, false
	}
	b.mu.Lock()
	b.nextImage++
	id := b.nextImage
	b.mu.Unlock()
	return domain.Image{ID: id, ImageURL: "/static/" + hdr.Filename}, true
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func (b *fakeBackend) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/register/owner", func(w http.ResponseWriter, r *http.Request) {
		var reg domain.Registration
		_ = json.NewDecoder(r.Body).Decode(&reg)
		tok := "tok-" + reg.Email
		b.mu.Lock()
		b.owners[tok] = domain.UserProfile{ID: 1, FirstName: reg.FirstName, LastName: reg.LastName, Email: reg.Email, IsOwner: true}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, domain.TokenResponse{AccessToken: tok, TokenType: "bearer"})
	})
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var c domain.Credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		tok := "tok-" + c.Email
		b.mu.Lock()
		_, ok := b.owners[tok]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, http.StatusOK, domain.TokenResponse{AccessToken: tok})
	})
	r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		u, ok := b.owner(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": u})
	})

	r.Get("/hotels/my", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		out := make([]domain.Hotel, 0, len(b.hotels))
		for id := int64(1); id <= b.nextID; id++ {
			if h, ok := b.hotels[id]; ok {
				out = append(out, h)
			}
		}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, out)
	}))
	r.Post("/hotels/", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.hit("create-hotel")
		var in domain.HotelInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		b.nextID++
		h := domain.Hotel{ID: b.nextID, Name: in.Name, Description: in.Description, Address: in.Address,
			Images: []domain.Image{}, Amenities: []domain.HotelAmenity{}}
		b.hotels[h.ID] = h
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, h)
	}))
	r.Get("/hotels/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		h, ok := b.hotels[pathID(r)]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Hotel not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hotel": h})
	}))
	r.Delete("/hotels/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.hit("delete-hotel")
		b.mu.Lock()
		delete(b.hotels, pathID(r))
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	r.Get("/hotels/{id}/stats/full", b.authed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(statsBody))
	}))
	r.Post("/hotels/{id}/images", b.authed(func(w http.ResponseWriter, r *http.Request) {
		img, ok := b.readImage(w, r)
		if !ok {
			return
		}
		b.mu.Lock()
		h, found := b.hotels[pathID(r)]
		if found {
			img.HotelID = h.ID
			h.Images = append(h.Images, img)
			b.hotels[h.ID] = h
		}
		b.mu.Unlock()
		if !found {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Hotel not found"})
			return
		}
		writeJSON(w, http.StatusOK, img)
	}))
	r.Delete("/hotels/images/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		b.mu.Lock()
		for hid, h := range b.hotels {
			kept := h.Images[:0:0]
			for _, img := range h.Images {
				if img.ID != id {
					kept = append(kept, img)
				}
			}
			h.Images = kept
			b.hotels[hid] = h
		}
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))

	r.Get("/rooms/", b.authed(func(w http.ResponseWriter, r *http.Request) {
		hotelID, _ := strconv.ParseInt(r.URL.Query().Get("hotel_id"), 10, 64)
		b.mu.Lock()
		out := []domain.Room{}
		for id := int64(1); id <= b.nextRoom; id++ {
			if rm, ok := b.rooms[id]; ok && rm.HotelID == hotelID {
				out = append(out, rm)
			}
		}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, out)
	}))
	r.Post("/rooms/", b.authed(func(w http.ResponseWriter, r *http.Request) {
		var rm domain.Room
		_ = json.NewDecoder(r.Body).Decode(&rm)
		b.mu.Lock()
		b.nextRoom++
		rm.ID = b.nextRoom
		rm.AmenityIDs = nil
		b.rooms[rm.ID] = rm
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, rm)
	}))
	r.Get("/rooms/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		rm, ok := b.rooms[pathID(r)]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Room not found"})
			return
		}
		writeJSON(w, http.StatusOK, rm)
	}))
	r.Get("/rooms/{id}/images", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		out := append([]domain.Image{}, b.roomImages[pathID(r)]...)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, out)
	}))
	r.Post("/rooms/{id}/images", b.authed(func(w http.ResponseWriter, r *http.Request) {
		img, ok := b.readImage(w, r)
		if !ok {
			return
		}
		img.RoomID = pathID(r)
		b.mu.Lock()
		b.roomImages[img.RoomID] = append(b.roomImages[img.RoomID], img)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, img)
	}))
	r.Delete("/rooms/images/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.hit("delete-room-image")
		id := pathID(r)
		b.mu.Lock()
		for rid, imgs := range b.roomImages {
			kept := imgs[:0:0]
			for _, img := range imgs {
				if img.ID != id {
					kept = append(kept, img)
				}
			}
			b.roomImages[rid] = kept
		}
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	r.Get("/amenities/hotel", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Amenity{{ID: 1, Name: "Wifi"}})
	}))
	r.Get("/amenities/room", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Amenity{{ID: 7, Name: "Balcony"}})
	}))
	r.Get("/hotels/{id}/bookings", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.hit("bookings")
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		b.mu.Lock()
		rows := b.bookings[pathID(r)]
		b.mu.Unlock()
		if skip > len(rows) {
			skip = len(rows)
		}
		end := skip + limit
		if end > len(rows) {
			end = len(rows)
		}
		writeJSON(w, http.StatusOK, rows[skip:end])
	}))
	r.Post("/bookings/{id}/confirm-cash", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.hit("confirm-cash")
		writeJSON(w, http.StatusOK, map[string]string{"message": "confirmed"})
	}))
	return r
}
