// Package diff computes the minimal partial-update body for an edited
// reservation.  It is a pure function over the five mutable fields: a
// field appears in the patch iff the draft value differs from the
// original by strict value comparison.  An empty patch is the no-op
// signal the workflow uses to skip the network call entirely.
package diff

import "github.com/iliyamo/restaurant-reservation-web/internal/model"

// BookingPatch compares an original persisted booking with an edited
// draft and returns only the changed fields.  Clock values on both
// sides are normalised before comparing, so "19:00" and "19:00:00"
// never produce a spurious diff.
func BookingPatch(original model.Booking, draft model.BookingDraft) model.BookingPatch {
	base := original.Draft()
	patch := model.BookingPatch{}

	if draft.TableID != base.TableID {
		patch["table_id"] = draft.TableID
	}
	if draft.Date != base.Date {
		patch["date"] = draft.Date
	}
	if s := model.NormalizeClock(draft.StartTime); s != base.StartTime {
		patch["start_time"] = s
	}
	if e := model.NormalizeClock(draft.EndTime); e != base.EndTime {
		patch["end_time"] = e
	}
	if draft.NumberOfPeople != base.NumberOfPeople {
		patch["number_of_people"] = draft.NumberOfPeople
	}
	return patch
}
