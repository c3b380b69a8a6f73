package views

import (
	"context"
	"sync"

	"hotelhub/internal/adapters/filestore"
	"hotelhub/internal/app"
	"hotelhub/internal/domain"
)

// fakeBackend is an in-memory backend. Fields ending in Err force that call to fail.
type fakeBackend struct {
	mu sync.Mutex

	tokens    domain.TokenStore
	hotels    map[int64]domain.Hotel
	rooms     map[int64][]domain.Room
	amenities []domain.Amenity
	bookings  []domain.Booking
	employees map[int64][]domain.Employee
	salaries  map[int64][]domain.SalaryRecord
	roomImgs  map[int64][]domain.Image
	me        domain.UserProfile

	statsErr    error
	confirmErr  error
	deleteErr   error
	profileErr  error
	profileRes  domain.ProfileUpdateResult
	updateErr   error
	pageQueries []domain.PageQuery
	calls       map[string]int
	block       chan struct{} // when set, DeleteHotelImage waits on it
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		tokens: filestore.NewMemory("tok"),
		hotels: map[int64]domain.Hotel{
			1: {ID: 1, Name: "Sea View", Address: domain.Address{City: "Nice", Country: "FR"},
				Images:    []domain.Image{{ID: 10, ImageURL: "/a.jpg"}, {ID: 11, ImageURL: "/b.jpg"}},
				Amenities: []domain.HotelAmenity{{AmenityID: 2}}},
		},
		rooms:     map[int64][]domain.Room{1: {{ID: 100, HotelID: 1, RoomNumber: "101"}, {ID: 101, HotelID: 1, RoomNumber: "102"}}},
		amenities: []domain.Amenity{{ID: 1, Name: "Wifi"}, {ID: 2, Name: "Pool"}},
		employees: map[int64][]domain.Employee{1: {{ID: 5, HotelID: 1, FirstName: "Ann", LastName: "Lee", Position: "Chef", Salary: 1000}}},
		salaries:  map[int64][]domain.SalaryRecord{},
		roomImgs:  map[int64][]domain.Image{},
		me:        domain.UserProfile{ID: 1, FirstName: "Ana", Email: "ana@example.com", IsOwner: true},
		calls:     map[string]int{},
	}
}

func (f *fakeBackend) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) deps() Deps {
	return Deps{
		API:     f,
		Session: app.NewSessionStore(f, f.tokens),
		Hotels:  app.NewHotelCollection(f, nil),
	}
}

func (f *fakeBackend) Login(context.Context, domain.Credentials) (domain.TokenResponse, error) {
	return domain.TokenResponse{AccessToken: "tok"}, nil
}

func (f *fakeBackend) RegisterOwner(context.Context, domain.Registration) (domain.TokenResponse, error) {
	return domain.TokenResponse{AccessToken: "tok"}, nil
}

func (f *fakeBackend) Me(context.Context) (domain.UserProfile, error) { return f.me, nil }

func (f *fakeBackend) UpdateOwnerProfile(_ context.Context, u domain.ProfileUpdate) (domain.ProfileUpdateResult, error) {
	f.hit("profile")
	if f.profileErr != nil {
		return domain.ProfileUpdateResult{}, f.profileErr
	}
	return f.profileRes, nil
}

func (f *fakeBackend) MyHotels(context.Context) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Hotel, 0, len(f.hotels))
	for _, h := range f.hotels {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeBackend) CreateHotel(_ context.Context, in domain.HotelInput) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := int64(len(f.hotels) + 1)
	h := domain.Hotel{ID: id, Name: in.Name, Address: in.Address}
	f.hotels[id] = h
	return h, nil
}

func (f *fakeBackend) GetHotel(_ context.Context, id int64) (domain.Hotel, error) {
	f.hit("get-hotel")
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, &domain.APIError{Kind: domain.KindRejected, Status: 404, Message: "Hotel not found", Err: domain.ErrNotFound}
	}
	return h, nil
}

func (f *fakeBackend) UpdateHotel(_ context.Context, id int64, in domain.HotelUpdate) (domain.Hotel, error) {
	f.hit("update-hotel")
	if f.updateErr != nil {
		return domain.Hotel{}, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	h := f.hotels[id]
	h.Name = in.HotelData.Name
	f.hotels[id] = h
	return h, nil
}

func (f *fakeBackend) DeleteHotel(_ context.Context, id int64) error {
	f.hit("delete-hotel")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	delete(f.hotels, id)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) UploadHotelImage(_ context.Context, hotelID int64, u domain.Upload) (domain.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := f.hotels[hotelID]
	img := domain.Image{ID: int64(50 + len(h.Images)), HotelID: hotelID, ImageURL: "/" + u.Filename}
	h.Images = append(h.Images, img)
	f.hotels[hotelID] = h
	return img, nil
}

func (f *fakeBackend) DeleteHotelImage(ctx context.Context, imageID int64) error {
	f.hit("delete-image")
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (f *fakeBackend) HotelStats(context.Context, int64) (domain.HotelStats, error) {
	if f.statsErr != nil {
		return domain.HotelStats{}, f.statsErr
	}
	return domain.HotelStats{General: &domain.GeneralStats{TotalRooms: 2, Occupancy: 0.5}}, nil
}

func (f *fakeBackend) HotelAmenities(context.Context) ([]domain.Amenity, error) { return f.amenities, nil }

func (f *fakeBackend) ListRooms(_ context.Context, hotelID int64) ([]domain.Room, error) {
	return f.rooms[hotelID], nil
}

func (f *fakeBackend) GetRoom(_ context.Context, id int64) (domain.Room, error) {
	for _, rs := range f.rooms {
		for _, r := range rs {
			if r.ID == id {
				return r, nil
			}
		}
	}
	return domain.Room{}, &domain.APIError{Kind: domain.KindRejected, Status: 404, Err: domain.ErrNotFound}
}

func (f *fakeBackend) CreateRoom(_ context.Context, r domain.Room) (domain.Room, error) {
	f.hit("create-room")
	r.ID = 900
	return r, nil
}

func (f *fakeBackend) UpdateRoom(_ context.Context, id int64, r domain.Room) (domain.Room, error) {
	f.hit("update-room")
	r.ID = id
	return r, nil
}

func (f *fakeBackend) DeleteRoom(context.Context, int64) error {
	f.hit("delete-room")
	return nil
}

func (f *fakeBackend) ListRoomImages(_ context.Context, roomID int64) ([]domain.Image, error) {
	return f.roomImgs[roomID], nil
}

func (f *fakeBackend) UploadRoomImage(_ context.Context, roomID int64, u domain.Upload) (domain.Image, error) {
	return domain.Image{ID: 70, RoomID: roomID, ImageURL: "/" + u.Filename}, nil
}

func (f *fakeBackend) DeleteRoomImage(ctx context.Context, imageID int64) error {
	return f.DeleteHotelImage(ctx, imageID)
}

func (f *fakeBackend) RoomAmenities(context.Context) ([]domain.Amenity, error) { return f.amenities, nil }

func (f *fakeBackend) ListEmployees(_ context.Context, hotelID int64) ([]domain.Employee, error) {
	f.hit("list-employees")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Employee(nil), f.employees[hotelID]...), nil
}

func (f *fakeBackend) CreateEmployee(_ context.Context, e domain.Employee) (domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = int64(100 + len(f.employees[e.HotelID]))
	f.employees[e.HotelID] = append(f.employees[e.HotelID], e)
	return e, nil
}

func (f *fakeBackend) UpdateEmployee(_ context.Context, id int64, e domain.Employee) (domain.Employee, error) {
	return e, nil
}

func (f *fakeBackend) DeleteEmployee(context.Context, int64) error {
	f.hit("delete-employee")
	return nil
}

func (f *fakeBackend) SalaryHistory(_ context.Context, id int64) ([]domain.SalaryRecord, error) {
	return append([]domain.SalaryRecord(nil), f.salaries[id]...), nil
}

func (f *fakeBackend) ListBookings(_ context.Context, _ int64, pg domain.PageQuery) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageQueries = append(f.pageQueries, pg)
	if pg.Skip >= len(f.bookings) {
		return []domain.Booking{}, nil
	}
	end := pg.Skip + pg.Limit
	if end > len(f.bookings) {
		end = len(f.bookings)
	}
	return append([]domain.Booking(nil), f.bookings[pg.Skip:end]...), nil
}

func (f *fakeBackend) ConfirmCash(context.Context, int64) error {
	f.hit("confirm-cash")
	return f.confirmErr
}

func (f *fakeBackend) CancelCash(context.Context, int64) error {
	f.hit("cancel-cash")
	return nil
}

func (f *fakeBackend) RefundManual(context.Context, int64) error {
	f.hit("refund")
	return nil
}

var _ domain.Backend = (*fakeBackend)(nil)

type toasts struct {
	mu  sync.Mutex
	got []domain.Notification
}

func (t *toasts) Add(k domain.NotificationKind, m string) domain.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := domain.Notification{ID: int64(len(t.got) + 1), Kind: k, Message: m}
	t.got = append(t.got, n)
	return n
}

func (t *toasts) last() domain.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.got) == 0 {
		return domain.Notification{}
	}
	return t.got[len(t.got)-1]
}
