package domain

import "context"

type AuthAPI interface {
	Login(ctx context.Context, c Credentials) (TokenResponse, error)
	RegisterOwner(ctx context.Context, r Registration) (TokenResponse, error)
	Me(ctx context.Context) (UserProfile, error)
	UpdateOwnerProfile(ctx context.Context, u ProfileUpdate) (ProfileUpdateResult, error)
}

type HotelAPI interface {
	MyHotels(ctx context.Context) ([]Hotel, error)
	CreateHotel(ctx context.Context, in HotelInput) (Hotel, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	UpdateHotel(ctx context.Context, id int64, in HotelUpdate) (Hotel, error)
	DeleteHotel(ctx context.Context, id int64) error
	UploadHotelImage(ctx context.Context, hotelID int64, f Upload) (Image, error)
	DeleteHotelImage(ctx context.Context, imageID int64) error
	HotelStats(ctx context.Context, hotelID int64) (HotelStats, error)
	HotelAmenities(ctx context.Context) ([]Amenity, error)
}

type RoomAPI interface {
	ListRooms(ctx context.Context, hotelID int64) ([]Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	CreateRoom(ctx context.Context, r Room) (Room, error)
	UpdateRoom(ctx context.Context, id int64, r Room) (Room, error)
	DeleteRoom(ctx context.Context, id int64) error
	ListRoomImages(ctx context.Context, roomID int64) ([]Image, error)
	UploadRoomImage(ctx context.Context, roomID int64, f Upload) (Image, error)
	DeleteRoomImage(ctx context.Context, imageID int64) error
	RoomAmenities(ctx context.Context) ([]Amenity, error)
}

type EmployeeAPI interface {
	ListEmployees(ctx context.Context, hotelID int64) ([]Employee, error)
	CreateEmployee(ctx context.Context, e Employee) (Employee, error)
	UpdateEmployee(ctx context.Context, id int64, e Employee) (Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	SalaryHistory(ctx context.Context, employeeID int64) ([]SalaryRecord, error)
}

type BookingAPI interface {
	ListBookings(ctx context.Context, hotelID int64, pg PageQuery) ([]Booking, error)
	ConfirmCash(ctx context.Context, bookingID int64) error
	CancelCash(ctx context.Context, bookingID int64) error
	RefundManual(ctx context.Context, bookingID int64) error
}

// Backend is the full REST surface consumed by the console.
type Backend interface {
	AuthAPI
	HotelAPI
	RoomAPI
	EmployeeAPI
	BookingAPI
}

// TokenStore persists the bearer token under a fixed key. Get returns "" when absent.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Notifier receives transient toast messages.
type Notifier interface {
	Add(kind NotificationKind, message string) Notification
}

// Alerter receives blocking alerts (shown modally, not as toasts).
type Alerter interface {
	Alert(message string)
}

// AlertFunc adapts a plain func to Alerter.
type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }
