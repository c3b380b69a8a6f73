package domain

type Address struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Country    string   `json:"country"`
	PostalCode string   `json:"postal_code"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

type Image struct {
	ID       int64  `json:"id"`
	HotelID  int64  `json:"hotel_id,omitempty"`
	RoomID   int64  `json:"room_id,omitempty"`
	ImageURL string `json:"image_url"`
}

type Amenity struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// HotelAmenity is the join row the backend embeds in hotel and room payloads.
type HotelAmenity struct {
	AmenityID int64 `json:"amenity_id"`
}

type Hotel struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Address     Address        `json:"address"`
	Images      []Image        `json:"images"`
	Amenities   []HotelAmenity `json:"amenities"`
}

// HotelInput is the create payload for POST /hotels/.
type HotelInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     Address `json:"address"`
}

// HotelUpdate is the PUT /hotels/{id} payload.
type HotelUpdate struct {
	HotelData  HotelInput `json:"hotel_data"`
	AmenityIDs []int64    `json:"amenity_ids"`
}

// Upload is a file staged for a multipart request.
type Upload struct {
	Filename string
	Content  []byte
}

// HotelDraft stages a create-hotel form. Required: name, street, city, country.
type HotelDraft struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Street      string   `json:"street" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state"`
	Country     string   `json:"country" validate:"required"`
	PostalCode  string   `json:"postal_code"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Image       *Upload  `json:"-"`
}

// DraftPatch edits a draft field by field: nil leaves a field alone, an empty
// string clears it.
type DraftPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Street      *string  `json:"street"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	Country     *string  `json:"country"`
	PostalCode  *string  `json:"postal_code"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Image       *Upload  `json:"-"`
}

// Patch sets every text field of the draft, empty ones included.
func (d HotelDraft) Patch() DraftPatch {
	return DraftPatch{
		Name:        &d.Name,
		Description: &d.Description,
		Street:      &d.Street,
		City:        &d.City,
		State:       &d.State,
		Country:     &d.Country,
		PostalCode:  &d.PostalCode,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		Image:       d.Image,
	}
}

func (d HotelDraft) Input() HotelInput {
	return HotelInput{
		Name:        d.Name,
		Description: d.Description,
		Address: Address{
			Street:     d.Street,
			City:       d.City,
			State:      d.State,
			Country:    d.Country,
			PostalCode: d.PostalCode,
			Latitude:   d.Latitude,
			Longitude:  d.Longitude,
		},
	}
}

const DefaultRoomType = "standard"

type Room struct {
	ID            int64          `json:"id,omitempty"`
	HotelID       int64          `json:"hotel_id"`
	RoomNumber    string         `json:"room_number" validate:"required"`
	RoomType      string         `json:"room_type"`
	Places        int            `json:"places" validate:"gte=1"`
	PricePerNight float64        `json:"price_per_night" validate:"gte=0"`
	Description   string         `json:"description"`
	Amenities     []HotelAmenity `json:"amenities,omitempty"`
	AmenityIDs    []int64        `json:"amenity_ids,omitempty"`
}

type Employee struct {
	ID        int64   `json:"id,omitempty"`
	HotelID   int64   `json:"hotel_id"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Position  string  `json:"position" validate:"required"`
	Salary    float64 `json:"salary" validate:"gt=0"`
}

type SalaryRecord struct {
	ID        int64   `json:"id"`
	OldSalary float64 `json:"old_salary"`
	NewSalary float64 `json:"new_salary"`
	ChangedAt string  `json:"changed_at"`
}
