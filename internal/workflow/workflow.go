// Package workflow implements the reservation admission workflow: the
// sequence of steps that turns user input into a persisted reservation
// or a reported failure.  It orchestrates table discovery, slot
// selection, submit-time validation, minimal-diff edits and deletion,
// and owns the state machine
//
//	Idle → SelectingTable → CollectingDetails → Submitting → {Succeeded, Failed}
//
// Failed returns to CollectingDetails when the user corrects input;
// Succeeded is terminal for that submission.  The Submitting state is a
// first-class signal: while it is active a second submission is
// rejected, which is how double-clicks on a confirm button are closed
// out.  The workflow never mutates the session store, not even when the
// gateway reports a 401; reacting to that is the caller's decision.
package workflow

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/diff"
	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

// State identifies where a workflow instance is in its lifecycle.
type State string

const (
	StateIdle              State = "idle"
	StateSelectingTable    State = "selecting_table"
	StateCollectingDetails State = "collecting_details"
	StateSubmitting        State = "submitting"
	StateSucceeded         State = "succeeded"
	StateFailed            State = "failed"
)

// Gateway is the slice of the API client the workflow needs.  *api.Client
// satisfies it; tests substitute a fake.
type Gateway interface {
	ListTables(ctx context.Context, restaurantID int64) ([]model.Table, error)
	CreateBooking(ctx context.Context, draft model.BookingDraft) (model.Booking, error)
	UpdateBooking(ctx context.Context, bookingID int64, patch model.BookingPatch) (model.Booking, error)
	DeleteBooking(ctx context.Context, bookingID int64) error
}

// Workflow drives one reservation admission.  It is safe for concurrent
// use: the mutex is released around network calls so that a newer load
// can overtake a stale one, and the Submitting state guards against a
// second in-flight submission.
type Workflow struct {
	gw       Gateway
	validate *validator.Validate

	mu           sync.Mutex
	state        State
	restaurantID int64
	tables       []model.Table
	draft        model.BookingDraft
	failure      string
	loadSeq      uint64
}

// New returns a workflow in the Idle state bound to the given gateway.
func New(gw Gateway) *Workflow {
	v := validator.New()
	// Report fields by their wire name so failures read like the forms.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Workflow{gw: gw, validate: v, state: StateIdle}
}

// State returns the current lifecycle state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Failure returns the message carried by the Failed state, verbatim
// from the service's {detail} when the rejection came over the wire.
func (w *Workflow) Failure() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failure
}

// Draft returns a copy of the in-progress draft.  It is retained across
// failures so the user can correct and resubmit.
func (w *Workflow) Draft() model.BookingDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Tables returns the candidate set from the last completed load.
func (w *Workflow) Tables() []model.Table {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tables
}

// LoadAvailableTables fetches the candidate tables for a restaurant and
// moves the workflow to SelectingTable.  An empty result is a valid,
// displayable state.  Each load carries a sequence number: when a newer
// load starts before this one completes, the late response is discarded
// and ErrStaleResponse returned, so a view that has moved on to another
// restaurant can never be overwritten by an earlier one.
func (w *Workflow) LoadAvailableTables(ctx context.Context, restaurantID int64) ([]model.Table, error) {
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	w.loadSeq++
	seq := w.loadSeq
	w.mu.Unlock()

	tables, err := w.gw.ListTables(ctx, restaurantID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.loadSeq {
		return nil, ErrStaleResponse
	}
	if err != nil {
		return nil, err
	}
	w.restaurantID = restaurantID
	w.tables = tables
	w.state = StateSelectingTable
	w.draft = model.BookingDraft{RestaurantID: restaurantID}
	return tables, nil
}

// SelectTable picks a table out of the loaded candidate set and moves
// on to CollectingDetails.  Selecting a table that was not part of the
// last load is rejected.
func (w *Workflow) SelectTable(tableID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelectingTable && w.state != StateCollectingDetails {
		return ErrWrongState
	}
	for _, t := range w.tables {
		if t.ID == tableID {
			w.draft.TableID = tableID
			w.draft.RestaurantID = w.restaurantID
			w.state = StateCollectingDetails
			return nil
		}
	}
	return ErrTableNotAvailable
}

// SetField mutates one field of the in-progress draft.  Per the
// submit-time validation policy nothing is checked here beyond the
// field name; an unparseable number leaves the field zero so that the
// submit reports it as missing.  Setting a field from the Failed state
// is the retry transition back to CollectingDetails.
func (w *Workflow) SetField(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateCollectingDetails:
	case StateFailed:
		w.state = StateCollectingDetails
	default:
		return ErrWrongState
	}
	switch name {
	case "date":
		w.draft.Date = value
	case "start_time":
		w.draft.StartTime = value
	case "end_time":
		w.draft.EndTime = value
	case "number_of_people":
		n, _ := strconv.Atoi(value)
		w.draft.NumberOfPeople = n
	default:
		return ErrWrongState
	}
	return nil
}

// SubmitCreate validates the collected draft and submits it.  A draft
// that fails validation never reaches the network.  On rejection the
// workflow moves to Failed with the service's detail and the draft is
// kept so the user can correct and resubmit.
func (w *Workflow) SubmitCreate(ctx context.Context) (model.Booking, error) {
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return model.Booking{}, ErrSubmissionInFlight
	}
	if w.state != StateCollectingDetails && w.state != StateFailed {
		w.mu.Unlock()
		return model.Booking{}, ErrWrongState
	}
	w.draft.StartTime = model.NormalizeClock(w.draft.StartTime)
	w.draft.EndTime = model.NormalizeClock(w.draft.EndTime)
	draft := w.draft
	if verr := w.checkDraft(draft); verr != nil {
		w.state = StateCollectingDetails
		w.mu.Unlock()
		return model.Booking{}, verr
	}
	w.state = StateSubmitting
	w.mu.Unlock()

	booking, err := w.gw.CreateBooking(ctx, draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.fail(err)
		return model.Booking{}, err
	}
	w.state = StateSucceeded
	w.failure = ""
	return booking, nil
}

// SubmitEdit computes the minimal diff between the original persisted
// record and the edited draft.  An empty diff short-circuits to
// ErrNothingChanged without a network call; otherwise only the changed
// fields are sent.  Success and failure transitions match SubmitCreate.
func (w *Workflow) SubmitEdit(ctx context.Context, original model.Booking, draft model.BookingDraft) (model.Booking, error) {
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return model.Booking{}, ErrSubmissionInFlight
	}
	draft.StartTime = model.NormalizeClock(draft.StartTime)
	draft.EndTime = model.NormalizeClock(draft.EndTime)
	if verr := w.checkDraft(draft); verr != nil {
		w.mu.Unlock()
		return model.Booking{}, verr
	}
	patch := diff.BookingPatch(original, draft)
	if len(patch) == 0 {
		w.mu.Unlock()
		return model.Booking{}, ErrNothingChanged
	}
	w.draft = draft
	w.state = StateSubmitting
	w.mu.Unlock()

	updated, err := w.gw.UpdateBooking(ctx, original.BookingID, patch)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.fail(err)
		return model.Booking{}, err
	}
	w.state = StateSucceeded
	w.failure = ""
	return updated, nil
}

// SubmitDelete removes a persisted reservation.  Deletion is
// destructive and irreversible from the client's perspective, so the
// caller must pass an explicit confirmation; it is never inferred.  On
// failure the item stays in place; there is no optimistic removal.
func (w *Workflow) SubmitDelete(ctx context.Context, bookingID int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return ErrSubmissionInFlight
	}
	w.state = StateSubmitting
	w.mu.Unlock()

	err := w.gw.DeleteBooking(ctx, bookingID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.fail(err)
		return err
	}
	w.state = StateSucceeded
	w.failure = ""
	return nil
}

// fail records a submission failure.  The detail of an API error is
// carried verbatim for display; the session store is left untouched
// even for a 401.
func (w *Workflow) fail(err error) {
	w.state = StateFailed
	if apiErr, ok := api.AsError(err); ok {
		w.failure = apiErr.Detail
		return
	}
	w.failure = err.Error()
}

// checkDraft enforces the submittability invariant: all five fields
// present, at least one guest, parseable date and clocks, and
// start_time strictly before end_time.
func (w *Workflow) checkDraft(draft model.BookingDraft) error {
	var fields []string
	if err := w.validate.Struct(draft); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		} else {
			return err
		}
	}
	start, errStart := parseClock(draft.StartTime)
	if draft.StartTime != "" && errStart != nil {
		fields = append(fields, "start_time")
	}
	end, errEnd := parseClock(draft.EndTime)
	if draft.EndTime != "" && errEnd != nil {
		fields = append(fields, "end_time")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: dedupe(fields)}
	}
	if !start.Before(end) {
		return &ValidationError{Fields: []string{"start_time", "end_time"}}
	}
	return nil
}

func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04:05", s)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
