package views

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
)

// BookingPageSize is the fixed limit of every bookings page.
const BookingPageSize = 25

type BookingFeedModel struct {
	Rows    []domain.Booking `json:"rows"`
	HasMore bool             `json:"has_more"`
	Loading bool             `json:"loading"`
}

// BookingFeed pages through a hotel's bookings by offset. Pages are appended;
// a short or failed page ends the feed.
type BookingFeed struct {
	ctx     context.Context
	api     domain.BookingAPI
	notes   domain.Notifier
	hotelID int64

	rows *app.State[[]domain.Booking]

	mu      sync.Mutex
	skip    int
	hasMore bool
	loading app.Control
	actions app.ControlSet
}

func NewBookingFeed(ctx context.Context, api domain.BookingAPI, notes domain.Notifier, hotelID int64) *BookingFeed {
	return &BookingFeed{
		ctx:     ctx,
		api:     api,
		notes:   notes,
		hotelID: hotelID,
		rows:    app.NewState[[]domain.Booking](nil),
		hasMore: true,
	}
}

// More fetches the next page. It is a no-op once the feed has ended or while
// a page is already loading.
func (f *BookingFeed) More() error {
	if !f.loading.Acquire() {
		return domain.ErrInFlight
	}
	defer f.loading.Release()

	// read the offset only while holding the loading control
	f.mu.Lock()
	if !f.hasMore {
		f.mu.Unlock()
		return nil
	}
	skip := f.skip
	f.mu.Unlock()

	page, err := f.api.ListBookings(f.ctx, f.hotelID, domain.PageQuery{Skip: skip, Limit: BookingPageSize})
	if f.ctx.Err() != nil {
		return domain.ErrUnmounted
	}
	if err != nil {
		log.Warn().Err(err).Int64("hotel_id", f.hotelID).Int("skip", skip).Msg("bookings page failed")
		f.mu.Lock()
		f.hasMore = false
		f.mu.Unlock()
		return err
	}

	f.rows.Update(func(rows []domain.Booking) []domain.Booking {
		out := make([]domain.Booking, 0, len(rows)+len(page))
		out = append(out, rows...)
		return append(out, page...)
	})
	f.mu.Lock()
	f.skip += len(page)
	if len(page) < BookingPageSize {
		f.hasMore = false
	}
	f.mu.Unlock()
	return nil
}

func (f *BookingFeed) Model() BookingFeedModel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return BookingFeedModel{Rows: f.rows.Get(), HasMore: f.hasMore, Loading: f.loading.Busy()}
}

// Loaded reports whether at least one page was requested successfully or the feed ended.
func (f *BookingFeed) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.skip > 0 || !f.hasMore
}

// Has reports whether the booking is among the loaded rows.
func (f *BookingFeed) Has(id int64) bool {
	_, ok := f.find(id)
	return ok
}

func (f *BookingFeed) find(id int64) (domain.Booking, bool) {
	for _, b := range f.rows.Get() {
		if b.BookingID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

// ConfirmCash accepts a cash booking that is awaiting confirmation.
func (f *BookingFeed) ConfirmCash(id int64) error {
	return f.transition(id, domain.Booking.CashPending, domain.StatusConfirmed, "confirm-cash",
		func(ctx context.Context) error { return f.api.ConfirmCash(ctx, id) },
		"Booking confirmed", "Could not confirm booking")
}

// CancelCash rejects a cash booking that is awaiting confirmation.
func (f *BookingFeed) CancelCash(id int64) error {
	return f.transition(id, domain.Booking.CashPending, domain.StatusCancelled, "cancel-cash",
		func(ctx context.Context) error { return f.api.CancelCash(ctx, id) },
		"Booking cancelled", "Could not cancel booking")
}

// Refund issues a manual refund for a confirmed card booking.
func (f *BookingFeed) Refund(id int64) error {
	return f.transition(id, domain.Booking.Refundable, domain.StatusCancelled, "refund-manual",
		func(ctx context.Context) error { return f.api.RefundManual(ctx, id) },
		"Refund issued", "Could not issue refund")
}

func (f *BookingFeed) transition(id int64, allowed func(domain.Booking) bool, to domain.BookingStatus,
	name string, issue func(context.Context) error, ok, failed string) error {
	b, found := f.find(id)
	if !found {
		return domain.ErrNotFound
	}
	if !allowed(b) {
		return domain.ErrNotAllowed
	}
	return app.Execute(f.ctx, f.actions.For(id), f.notes, f.rows, app.Command[[]domain.Booking]{
		Name:    name,
		Issue:   issue,
		Apply:   func(rows []domain.Booking) []domain.Booking { return app.WithBookingStatus(rows, id, to) },
		Success: ok,
		Failure: failed,
	})
}
