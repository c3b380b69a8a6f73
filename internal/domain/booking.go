package domain

type BookingStatus string

const (
	StatusAwaitingConfirmation BookingStatus = "awaiting_confirmation"
	StatusConfirmed            BookingStatus = "confirmed"
	StatusCancelled            BookingStatus = "cancelled"
	StatusCompleted            BookingStatus = "completed"
)

// Booking is a read-only row of GET /hotels/{id}/bookings.
type Booking struct {
	BookingID   int64         `json:"booking_id"`
	RoomNumber  string        `json:"room_number"`
	ClientName  string        `json:"client_name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	IsCard      bool          `json:"is_card"`
	Amount      float64       `json:"amount"`
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
	Status      BookingStatus `json:"status"`
}

// CashPending reports whether the owner may confirm or reject the booking by hand.
func (b Booking) CashPending() bool {
	return !b.IsCard && b.Status == StatusAwaitingConfirmation
}

// Refundable reports whether a manual refund may be issued.
func (b Booking) Refundable() bool {
	return b.IsCard && b.Status == StatusConfirmed
}

type PageQuery struct {
	Skip  int
	Limit int
}
