package model

// Restaurant mirrors the remote service's restaurant record.  The front
// end never mutates these fields directly; admins edit them through the
// restaurant management screens which send a partial update.
type Restaurant struct {
	ID             int64  `json:"restaurant_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	RestaurantType string `json:"restaurant_type"`
	PhoneNumber    string `json:"phone_number"`
	Address        string `json:"address"`
}

// RestaurantDraft is the body of POST /restaurant/create.  Field limits
// match the service-side schema so obviously invalid input is rejected
// before a network call.
type RestaurantDraft struct {
	Name           string `json:"name" validate:"required,max=100"`
	Description    string `json:"description" validate:"required,max=500"`
	RestaurantType string `json:"restaurant_type" validate:"required,max=50"`
	PhoneNumber    string `json:"phone_number" validate:"required,max=15"`
	Address        string `json:"address" validate:"required,max=100"`
}

// RestaurantPatch carries only the fields that changed on an edit.
type RestaurantPatch map[string]any

// Table is a bookable table within one restaurant.
type Table struct {
	ID           int64 `json:"table_id"`
	RestaurantID int64 `json:"restaurant_id"`
	Number       int   `json:"number"`
	Capacity     int   `json:"capacity"`
}

// TableDraft is the body of POST /table/create.
type TableDraft struct {
	RestaurantID int64 `json:"restaurant_id" validate:"required"`
	Number       int   `json:"number" validate:"required,min=1"`
	Capacity     int   `json:"capacity" validate:"required,min=1"`
}

// TablePatch carries only the fields that changed on an edit.
type TablePatch map[string]any

// Schedule is one opening-hours row for a restaurant, keyed by weekday.
type Schedule struct {
	ID           int64  `json:"schedule_id"`
	RestaurantID int64  `json:"restaurant_id"`
	Day          string `json:"day"`
	OpeningHour  string `json:"opening_hour"`
	ClosingHour  string `json:"closing_hour"`
}

// ScheduleDraft is the body of POST /schedule/create.
type ScheduleDraft struct {
	RestaurantID int64  `json:"restaurant_id" validate:"required"`
	Day          string `json:"day" validate:"required"`
	OpeningHour  string `json:"opening_hour" validate:"required"`
	ClosingHour  string `json:"closing_hour" validate:"required"`
}
