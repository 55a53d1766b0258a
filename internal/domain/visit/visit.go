package visit

import (
	"fmt"
	"time"
)

// ProcessingState is the remote service's authoritative lifecycle label for
// a booking. State transitions happen server-side only; this code observes
// them and never drives them.
type ProcessingState string

const (
	StateRequested ProcessingState = "requested"
	StateWithdrawn ProcessingState = "withdrawn"
	StateBooked    ProcessingState = "booked"
	StateCancelled ProcessingState = "cancelled"
	StateRejected  ProcessingState = "rejected"
)

var validStates = map[ProcessingState]bool{
	StateRequested: true,
	StateWithdrawn: true,
	StateBooked:    true,
	StateCancelled: true,
	StateRejected:  true,
}

// UnmarshalJSON rejects unknown states: an unrecognized value means the
// remote contract changed and must fail the decode rather than be guessed at.
func (p *ProcessingState) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("processing_state must be a JSON string, got %s", b)
	}
	state := ProcessingState(b[1 : len(b)-1])
	if !validStates[state] {
		return fmt.Errorf("invalid processing_state for visit: %s", state)
	}
	*p = state
	return nil
}

// Visitor as reported by the remote service. Allowed is the service's
// eligibility verdict, never computed locally.
type Visitor struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth Date   `json:"date_of_birth"`
	Allowed     bool   `json:"allowed"`
}

// Age is the visitor's age in whole years as of the given date.
func (v Visitor) Age(asOf time.Time) int {
	return WholeYearsBetween(v.DateOfBirth.Time(), asOf)
}

// WholeYearsBetween counts completed years from birth to asOf.
func WholeYearsBetween(birth, asOf time.Time) int {
	years := asOf.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(asOf) {
		years--
	}
	return years
}

// Visit is the remote booking aggregate. It is only ever produced by
// decoding an API response (booking creation, fetch, cancel) and is not
// mutated locally.
type Visit struct {
	ID                  string          `json:"id"`
	ProcessingState     ProcessingState `json:"processing_state"`
	SlotGranted         *Slot           `json:"slot_granted,omitempty"`
	Slots               []Slot          `json:"slots"`
	Visitors            []Visitor       `json:"visitors"`
	PrisonID            string          `json:"prison_id"`
	ContactEmailAddress string          `json:"contact_email_address,omitempty"`
	ConfirmBy           Date            `json:"confirm_by,omitempty"`
	CancellationReason  string          `json:"cancellation_reason,omitempty"`
	CancelledAt         *time.Time      `json:"cancelled_at,omitempty"`
	CanCancel           bool            `json:"can_cancel"`
	CanWithdraw         bool            `json:"can_withdraw"`
}

// AllowedVisitors returns the visitors the service accepted.
func (v *Visit) AllowedVisitors() []Visitor {
	var out []Visitor
	for _, vis := range v.Visitors {
		if vis.Allowed {
			out = append(out, vis)
		}
	}
	return out
}

// RejectedVisitors returns the visitors the service turned away.
func (v *Visit) RejectedVisitors() []Visitor {
	var out []Visitor
	for _, vis := range v.Visitors {
		if !vis.Allowed {
			out = append(out, vis)
		}
	}
	return out
}
