package app

import "hotelhub/internal/domain"

// Pure patches applied after a successful mutation. Each returns a new slice
// and leaves its input untouched.

func removeWhere[T any](in []T, match func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}

func WithoutImage(images []domain.Image, id int64) []domain.Image {
	return removeWhere(images, func(i domain.Image) bool { return i.ID == id })
}

func WithoutRoom(rooms []domain.Room, id int64) []domain.Room {
	return removeWhere(rooms, func(r domain.Room) bool { return r.ID == id })
}

func WithoutEmployee(emps []domain.Employee, id int64) []domain.Employee {
	return removeWhere(emps, func(e domain.Employee) bool { return e.ID == id })
}

func WithoutHotel(hotels []domain.Hotel, id int64) []domain.Hotel {
	return removeWhere(hotels, func(h domain.Hotel) bool { return h.ID == id })
}

func AppendHotel(hotels []domain.Hotel, h domain.Hotel) []domain.Hotel {
	out := make([]domain.Hotel, len(hotels), len(hotels)+1)
	copy(out, hotels)
	return append(out, h)
}

func AppendImage(images []domain.Image, img domain.Image) []domain.Image {
	out := make([]domain.Image, len(images), len(images)+1)
	copy(out, images)
	return append(out, img)
}

// WithBookingStatus sets the status of one row.
func WithBookingStatus(rows []domain.Booking, bookingID int64, st domain.BookingStatus) []domain.Booking {
	out := make([]domain.Booking, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].BookingID == bookingID {
			out[i].Status = st
		}
	}
	return out
}

// HotelWithoutImage drops one image from a hotel.
func HotelWithoutImage(h domain.Hotel, imageID int64) domain.Hotel {
	h.Images = WithoutImage(h.Images, imageID)
	return h
}

// FilterAmenities keeps the catalogue entries the hotel (or room) links to.
func FilterAmenities(catalogue []domain.Amenity, linked []domain.HotelAmenity) []domain.Amenity {
	ids := make(map[int64]struct{}, len(linked))
	for _, l := range linked {
		ids[l.AmenityID] = struct{}{}
	}
	out := make([]domain.Amenity, 0, len(linked))
	for _, a := range catalogue {
		if _, ok := ids[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

func AmenityIDs(linked []domain.HotelAmenity) []int64 {
	out := make([]int64, 0, len(linked))
	for _, l := range linked {
		out = append(out, l.AmenityID)
	}
	return out
}
