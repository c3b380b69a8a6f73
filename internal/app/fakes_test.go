package app

import (
	"context"
	"sync"

	"hotelhub/internal/domain"
)

type memTokens struct {
	mu  sync.Mutex
	tok string
}

func (m *memTokens) Get(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok, nil
}

func (m *memTokens) Set(_ context.Context, t string) error {
	m.mu.Lock()
	m.tok = t
	m.mu.Unlock()
	return nil
}

func (m *memTokens) Clear(context.Context) error { return m.Set(context.Background(), "") }

type fakeAuth struct {
	tokens   *memTokens
	users    map[string]domain.UserProfile // by token
	loginErr error
	meCalls  int
}

func (f *fakeAuth) Login(_ context.Context, c domain.Credentials) (domain.TokenResponse, error) {
	if f.loginErr != nil {
		return domain.TokenResponse{}, f.loginErr
	}
	return domain.TokenResponse{AccessToken: "tok-" + c.Email}, nil
}

func (f *fakeAuth) RegisterOwner(_ context.Context, r domain.Registration) (domain.TokenResponse, error) {
	if f.loginErr != nil {
		return domain.TokenResponse{}, f.loginErr
	}
	tok := "tok-" + r.Email
	f.users[tok] = domain.UserProfile{ID: 9, FirstName: r.FirstName, Email: r.Email, IsOwner: true}
	return domain.TokenResponse{AccessToken: tok}, nil
}

func (f *fakeAuth) Me(ctx context.Context) (domain.UserProfile, error) {
	f.meCalls++
	tok, _ := f.tokens.Get(ctx)
	u, ok := f.users[tok]
	if !ok {
		return domain.UserProfile{}, &domain.APIError{Kind: domain.KindRejected, Status: 401, Message: "Not authenticated", Err: domain.ErrUnauthorized}
	}
	return u, nil
}

func (f *fakeAuth) UpdateOwnerProfile(context.Context, domain.ProfileUpdate) (domain.ProfileUpdateResult, error) {
	return domain.ProfileUpdateResult{}, nil
}

type fakeHotels struct {
	mu        sync.Mutex
	list      []domain.Hotel
	listErr   error
	createErr error
	uploadErr error
	created   []domain.HotelInput
	nextID    int64
}

func (f *fakeHotels) MyHotels(context.Context) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Hotel(nil), f.list...), nil
}

func (f *fakeHotels) CreateHotel(_ context.Context, in domain.HotelInput) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	if f.createErr != nil {
		return domain.Hotel{}, f.createErr
	}
	f.nextID++
	h := domain.Hotel{ID: f.nextID, Name: in.Name, Description: in.Description, Address: in.Address}
	f.list = append(f.list, h)
	return h, nil
}

func (f *fakeHotels) GetHotel(context.Context, int64) (domain.Hotel, error) {
	return domain.Hotel{}, domain.ErrNotFound
}

func (f *fakeHotels) UpdateHotel(context.Context, int64, domain.HotelUpdate) (domain.Hotel, error) {
	return domain.Hotel{}, nil
}

func (f *fakeHotels) DeleteHotel(context.Context, int64) error { return nil }

func (f *fakeHotels) UploadHotelImage(_ context.Context, hotelID int64, u domain.Upload) (domain.Image, error) {
	if f.uploadErr != nil {
		return domain.Image{}, f.uploadErr
	}
	return domain.Image{ID: 100, HotelID: hotelID, ImageURL: "/static/" + u.Filename}, nil
}

func (f *fakeHotels) DeleteHotelImage(context.Context, int64) error { return nil }

func (f *fakeHotels) HotelStats(context.Context, int64) (domain.HotelStats, error) {
	return domain.HotelStats{}, nil
}

func (f *fakeHotels) HotelAmenities(context.Context) ([]domain.Amenity, error) { return nil, nil }

type recordingAlerts struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingAlerts) Alert(m string) {
	r.mu.Lock()
	r.msgs = append(r.msgs, m)
	r.mu.Unlock()
}

func (r *recordingAlerts) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}
