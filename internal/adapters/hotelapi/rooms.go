package hotelapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hotelhub/internal/domain"
)

func (c *Client) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	q := url.Values{"hotel_id": {strconv.FormatInt(hotelID, 10)}}
	var out []domain.Room
	err := c.doJSON(ctx, http.MethodGet, "/rooms/", "/rooms/?"+q.Encode(), nil, &out)
	return out, err
}

func (c *Client) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	var out domain.Room
	err := c.doJSON(ctx, http.MethodGet, "/rooms/{id}", fmt.Sprintf("/rooms/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	var out domain.Room
	err := c.doJSON(ctx, http.MethodPost, "/rooms/", "/rooms/", r, &out)
	return out, err
}

func (c *Client) UpdateRoom(ctx context.Context, id int64, r domain.Room) (domain.Room, error) {
	var out domain.Room
	err := c.doJSON(ctx, http.MethodPut, "/rooms/{id}", fmt.Sprintf("/rooms/%d", id), r, &out)
	return out, err
}

func (c *Client) DeleteRoom(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/rooms/{id}", fmt.Sprintf("/rooms/%d", id), nil, nil)
}

func (c *Client) ListRoomImages(ctx context.Context, roomID int64) ([]domain.Image, error) {
	var out []domain.Image
	err := c.doJSON(ctx, http.MethodGet, "/rooms/{id}/images", fmt.Sprintf("/rooms/%d/images", roomID), nil, &out)
	return out, err
}

func (c *Client) UploadRoomImage(ctx context.Context, roomID int64, f domain.Upload) (domain.Image, error) {
	var out domain.Image
	err := c.doMultipart(ctx, "/rooms/{id}/images", fmt.Sprintf("/rooms/%d/images", roomID), f, &out)
	return out, err
}

func (c *Client) DeleteRoomImage(ctx context.Context, imageID int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/rooms/images/{id}", fmt.Sprintf("/rooms/images/%d", imageID), nil, nil)
}

func (c *Client) RoomAmenities(ctx context.Context) ([]domain.Amenity, error) {
	var out []domain.Amenity
	err := c.doJSON(ctx, http.MethodGet, "/amenities/room", "/amenities/room", nil, &out)
	return out, err
}
