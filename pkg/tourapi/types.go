package tourapi

import (
	"encoding/json"
	"strings"
)

// OpaqueJSON holds a response body whose shape the backend does not document.
// It is returned verbatim so callers can decode it if they know more.
type OpaqueJSON = json.RawMessage

// DataEnvelope is the {"data": ...} wrapper used by tour, service, user and booking endpoints.
type DataEnvelope[T any] struct {
	Data T `json:"data" yaml:"data"`
}

// ResultEnvelope is the {"result": ...} wrapper used by tag and category reads.
type ResultEnvelope[T any] struct {
	Result T `json:"result" yaml:"result"`
}

// Tour represents a tour as returned by the backend.
type Tour struct {
	ID          string     `json:"id"          yaml:"id"`
	Name        string     `json:"name"        yaml:"name"`
	Destination string     `json:"destination" yaml:"destination"`
	Price       float64    `json:"price"       yaml:"price"`
	StartDate   string     `json:"startDate"   yaml:"start_date"`
	EndDate     string     `json:"endDate"     yaml:"end_date"`
	Description string     `json:"description" yaml:"description"`
	ImageURL    string     `json:"imageUrl"    yaml:"image_url"`
	Tags        []Tag      `json:"tags"        yaml:"tags"`
	Categories  []Category `json:"categories"  yaml:"categories"`
}

// CategoryIDs returns the ids of the categories assigned to the tour.
func (t *Tour) CategoryIDs() []int {
	ids := make([]int, 0, len(t.Categories))
	for _, category := range t.Categories {
		ids = append(ids, category.ID)
	}

	return ids
}

// TagIDs returns the ids of the tags assigned to the tour.
func (t *Tour) TagIDs() []int {
	ids := make([]int, 0, len(t.Tags))
	for _, tag := range t.Tags {
		ids = append(ids, tag.ID)
	}

	return ids
}

// TourFields are the core tour attributes sent as multipart fields on create and update.
type TourFields struct {
	Name        string  `json:"name"        yaml:"name"        validate:"required"`
	Destination string  `json:"destination" yaml:"destination" validate:"required"`
	Price       float64 `json:"price"       yaml:"price"       validate:"gte=0"`
	StartDate   string  `json:"startDate"   yaml:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"endDate"     yaml:"end_date"    validate:"required,datetime=2006-01-02"`
	Description string  `json:"description" yaml:"description"`
}

// FieldsFromTour extracts the editable fields of an existing tour. Dates are
// truncated to their calendar day, matching what the edit form submits.
func FieldsFromTour(tour *Tour) TourFields {
	return TourFields{
		Name:        tour.Name,
		Destination: tour.Destination,
		Price:       tour.Price,
		StartDate:   dateOnly(tour.StartDate),
		EndDate:     dateOnly(tour.EndDate),
		Description: tour.Description,
	}
}

func dateOnly(value string) string {
	day, _, _ := strings.Cut(value, "T")

	return day
}

// Upload is a binary file attached to a multipart request.
type Upload struct {
	Filename    string `json:"filename"               yaml:"filename"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Data        []byte `json:"-"                      yaml:"-"`
}

// TourCategoriesAndTagsRequest replaces the categories and tags assigned to a tour.
type TourCategoriesAndTagsRequest struct {
	CategoryIDs []int `json:"categoryIds" yaml:"category_ids"`
	TagIDs      []int `json:"tagIds"      yaml:"tag_ids"`
}

// TourServicesRequest replaces the services assigned to a tour.
type TourServicesRequest struct {
	ServiceIDs []string `json:"serviceId" yaml:"service_ids"`
}

// Service represents an add-on service offered with a tour.
type Service struct {
	ID          string  `json:"id"          yaml:"id"`
	TourID      string  `json:"tourId"      yaml:"tour_id"`
	Name        string  `json:"name"        yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price"       yaml:"price"`
}

// ServiceRequest is the payload for creating or updating a service.
type ServiceRequest struct {
	Name        string  `json:"name"             yaml:"name"              validate:"required"`
	Description string  `json:"description"      yaml:"description"`
	Price       float64 `json:"price"            yaml:"price"             validate:"gte=0"`
	TourID      string  `json:"tourId,omitempty" yaml:"tour_id,omitempty"`
}

// UserRole is the numeric role understood by the backend.
type UserRole int

// Known user roles.
const (
	UserRoleCustomer UserRole = 0
	UserRoleAdmin    UserRole = 1
)

// User represents a platform account.
type User struct {
	ID    string `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  string `json:"role"  yaml:"role"`
}

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	UserName string   `json:"userName" yaml:"user_name" validate:"required"`
	Password string   `json:"password" yaml:"-"         validate:"required"`
	Role     UserRole `json:"role"     yaml:"role"      validate:"gte=0"`
}

// UpdateUserRequest is the payload for updating a user's profile.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"  yaml:"name,omitempty"`
	Email *string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
}

// Booking represents a tour booking.
type Booking struct {
	ID          string  `json:"id"          yaml:"id"`
	UserID      string  `json:"userId"      yaml:"user_id"`
	Username    string  `json:"username"    yaml:"username"`
	TourID      string  `json:"tourId"      yaml:"tour_id"`
	TourName    string  `json:"tourName"    yaml:"tour_name"`
	BookingDate string  `json:"bookingDate" yaml:"booking_date"`
	Quantity    int     `json:"quantity"    yaml:"quantity"`
	Status      string  `json:"status"      yaml:"status"`
	TotalPrice  float64 `json:"totalPrice"  yaml:"total_price"`
}

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	Username    string `json:"username"    yaml:"username"     validate:"required"`
	TourID      string `json:"tourId"      yaml:"tour_id"      validate:"required"`
	BookingDate string `json:"bookingDate" yaml:"booking_date" validate:"required"`
}

// Tag labels tours for search.
type Tag struct {
	ID   int    `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name" validate:"required"`
}

// Category groups tours.
type Category struct {
	ID          int    `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"        validate:"required"`
	Description string `json:"description" yaml:"description"`
}

// Credentials are sent to the auth endpoints.
type Credentials struct {
	Username string `json:"username" yaml:"username" validate:"required"`
	Password string `json:"password" yaml:"-"        validate:"required"`
}

// TourIDFrom extracts a tour id from an undocumented create/update response.
// The body must be an object whose "id" is a string or a number.
func TourIDFrom(body OpaqueJSON) (string, bool) {
	var created struct {
		ID json.RawMessage `json:"id"`
	}

	err := json.Unmarshal(body, &created)
	if err != nil || len(created.ID) == 0 || string(created.ID) == "null" {
		return "", false
	}

	var id string

	err = json.Unmarshal(created.ID, &id)
	if err == nil {
		return id, id != ""
	}

	var number json.Number

	err = json.Unmarshal(created.ID, &number)
	if err == nil {
		return number.String(), true
	}

	return "", false
}
