package hotelapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hotelhub/internal/domain"
)

func (c *Client) ListBookings(ctx context.Context, hotelID int64, pg domain.PageQuery) ([]domain.Booking, error) {
	q := url.Values{
		"skip":  {strconv.Itoa(pg.Skip)},
		"limit": {strconv.Itoa(pg.Limit)},
	}
	var out []domain.Booking
	err := c.doJSON(ctx, http.MethodGet, "/hotels/{id}/bookings",
		fmt.Sprintf("/hotels/%d/bookings?%s", hotelID, q.Encode()), nil, &out)
	return out, err
}

func (c *Client) ConfirmCash(ctx context.Context, bookingID int64) error {
	return c.doJSON(ctx, http.MethodPost, "/bookings/{id}/confirm-cash", fmt.Sprintf("/bookings/%d/confirm-cash", bookingID), nil, nil)
}

func (c *Client) CancelCash(ctx context.Context, bookingID int64) error {
	return c.doJSON(ctx, http.MethodPost, "/bookings/{id}/cancel-cash", fmt.Sprintf("/bookings/%d/cancel-cash", bookingID), nil, nil)
}

func (c *Client) RefundManual(ctx context.Context, bookingID int64) error {
	return c.doJSON(ctx, http.MethodPost, "/bookings/{id}/refund-manual", fmt.Sprintf("/bookings/%d/refund-manual", bookingID), nil, nil)
}

var _ domain.Backend = (*Client)(nil)
