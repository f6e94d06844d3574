package model

import "strings"

// BookingDraft is an in-progress reservation being composed by the
// admission workflow.  It becomes immutable once submitted.  Validation
// is deferred to submit time; the tags describe the submittability
// invariant (all fields present, at least one guest).  Time ordering is
// checked separately by the workflow.
type BookingDraft struct {
	TableID        int64  `json:"table_id" validate:"required"`
	RestaurantID   int64  `json:"restaurant_id" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string `json:"start_time" validate:"required"`
	EndTime        string `json:"end_time" validate:"required"`
	NumberOfPeople int    `json:"number_of_people" validate:"required,min=1"`
}

// Booking is a persisted reservation as returned by the remote service.
// UserInfo is only embedded when an admin lists bookings.
type Booking struct {
	BookingID      int64        `json:"booking_id"`
	UserID         int64        `json:"user_id"`
	TableID        int64        `json:"table_id"`
	RestaurantID   int64        `json:"restaurant_id"`
	Date           string       `json:"date"`
	StartTime      string       `json:"start_time"`
	EndTime        string       `json:"end_time"`
	NumberOfPeople int          `json:"number_of_people"`
	UserInfo       *BookingUser `json:"user_info,omitempty"`
}

// BookingUser is the user summary embedded in admin booking listings.
type BookingUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Draft returns the mutable portion of a persisted booking, with clock
// values normalised.  It is the "original" side of an edit diff.
func (b Booking) Draft() BookingDraft {
	return BookingDraft{
		TableID:        b.TableID,
		RestaurantID:   b.RestaurantID,
		Date:           b.Date,
		StartTime:      NormalizeClock(b.StartTime),
		EndTime:        NormalizeClock(b.EndTime),
		NumberOfPeople: b.NumberOfPeople,
	}
}

// BookingPatch is the minimal partial-update body for
// PATCH /booking/update/{id}: only the fields that changed.
type BookingPatch map[string]any

// NormalizeClock brings a clock value to HH:MM:SS form.  HTML time
// inputs produce "19:00" while the service returns "19:00:00"; both
// denote the same value and must compare equal in the diff engine.
func NormalizeClock(s string) string {
	switch strings.Count(s, ":") {
	case 1:
		return s + ":00"
	default:
		return s
	}
}
