package hotelapi

import (
	"context"
	"fmt"
	"net/http"

	"hotelhub/internal/domain"
)

func (c *Client) MyHotels(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	err := c.doJSON(ctx, http.MethodGet, "/hotels/my", "/hotels/my", nil, &out)
	return out, err
}

func (c *Client) CreateHotel(ctx context.Context, in domain.HotelInput) (domain.Hotel, error) {
	var out domain.Hotel
	err := c.doJSON(ctx, http.MethodPost, "/hotels/", "/hotels/", in, &out)
	return out, err
}

// hotelEnvelope accepts both {"hotel": {...}} and a bare hotel object.
type hotelEnvelope struct {
	Wrapped *domain.Hotel `json:"hotel"`
	domain.Hotel
}

func (c *Client) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	var env hotelEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/hotels/{id}", fmt.Sprintf("/hotels/%d", id), nil, &env); err != nil {
		return domain.Hotel{}, err
	}
	if env.Wrapped != nil {
		return *env.Wrapped, nil
	}
	return env.Hotel, nil
}

func (c *Client) UpdateHotel(ctx context.Context, id int64, in domain.HotelUpdate) (domain.Hotel, error) {
	var env hotelEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/hotels/{id}", fmt.Sprintf("/hotels/%d", id), in, &env); err != nil {
		return domain.Hotel{}, err
	}
	if env.Wrapped != nil {
		return *env.Wrapped, nil
	}
	return env.Hotel, nil
}

func (c *Client) DeleteHotel(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/hotels/{id}", fmt.Sprintf("/hotels/%d", id), nil, nil)
}

func (c *Client) UploadHotelImage(ctx context.Context, hotelID int64, f domain.Upload) (domain.Image, error) {
	var out domain.Image
	err := c.doMultipart(ctx, "/hotels/{id}/images", fmt.Sprintf("/hotels/%d/images", hotelID), f, &out)
	return out, err
}

func (c *Client) DeleteHotelImage(ctx context.Context, imageID int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/hotels/images/{id}", fmt.Sprintf("/hotels/images/%d", imageID), nil, nil)
}

func (c *Client) HotelStats(ctx context.Context, hotelID int64) (domain.HotelStats, error) {
	var out domain.HotelStats
	err := c.doJSON(ctx, http.MethodGet, "/hotels/{id}/stats/full", fmt.Sprintf("/hotels/%d/stats/full", hotelID), nil, &out)
	return out, err
}

func (c *Client) HotelAmenities(ctx context.Context) ([]domain.Amenity, error) {
	var out []domain.Amenity
	err := c.doJSON(ctx, http.MethodGet, "/amenities/hotel", "/amenities/hotel", nil, &out)
	return out, err
}
