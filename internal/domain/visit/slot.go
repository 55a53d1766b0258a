package visit

import (
	"fmt"
	"strings"
	"time"
)

const (
	slotTimeLayout = "2006-01-02T15:04"
	timeOnlyLayout = "15:04"
	dateLayout     = "2006-01-02"
)

// Slot is an immutable visiting interval. The canonical text form is
// "2006-01-02T15:04/15:04" when both ends fall on the same calendar day,
// otherwise both ends carry the full date.
type Slot struct {
	start time.Time
	end   time.Time
}

// ParseError reports slot text that does not match the interval grammar.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid slot %q: %s", e.Text, e.Reason)
}

// NewSlot builds a slot from explicit times. End must be after start.
func NewSlot(start, end time.Time) (Slot, error) {
	if !end.After(start) {
		return Slot{}, &ParseError{Text: start.Format(slotTimeLayout) + "/" + end.Format(slotTimeLayout), Reason: "end must be after start"}
	}
	return Slot{start: start, end: end}, nil
}

// ParseSlot parses the canonical interval text. Failures, including an end
// that is not after the start, return a *ParseError.
func ParseSlot(text string) (Slot, error) {
	startPart, endPart, found := strings.Cut(text, "/")
	if !found {
		return Slot{}, &ParseError{Text: text, Reason: "missing \"/\" separator"}
	}

	start, err := time.Parse(slotTimeLayout, startPart)
	if err != nil {
		return Slot{}, &ParseError{Text: text, Reason: "malformed start time"}
	}

	var end time.Time
	if strings.Contains(endPart, "T") {
		end, err = time.Parse(slotTimeLayout, endPart)
	} else {
		// Same-day form: the end inherits the start's date.
		end, err = time.Parse(slotTimeLayout, startPart[:len(dateLayout)]+"T"+endPart)
	}
	if err != nil {
		return Slot{}, &ParseError{Text: text, Reason: "malformed end time"}
	}

	if !end.After(start) {
		return Slot{}, &ParseError{Text: text, Reason: "end must be after start"}
	}
	return Slot{start: start, end: end}, nil
}

func (s Slot) Start() time.Time { return s.start }
func (s Slot) End() time.Time   { return s.end }

// IsZero reports whether the slot is the zero value (no interval).
func (s Slot) IsZero() bool { return s.start.IsZero() && s.end.IsZero() }

// String renders the canonical text form, the round-trip inverse of ParseSlot.
func (s Slot) String() string {
	sy, sm, sd := s.start.Date()
	ey, em, ed := s.end.Date()
	if sy == ey && sm == em && sd == ed {
		return s.start.Format(slotTimeLayout) + "/" + s.end.Format(timeOnlyLayout)
	}
	return s.start.Format(slotTimeLayout) + "/" + s.end.Format(slotTimeLayout)
}

// Equal reports interval equality.
func (s Slot) Equal(o Slot) bool {
	return s.start.Equal(o.start) && s.end.Equal(o.end)
}

// Less orders slots by start time, ties broken by end time.
func (s Slot) Less(o Slot) bool {
	if !s.start.Equal(o.start) {
		return s.start.Before(o.start)
	}
	return s.end.Before(o.end)
}

// StartDate is the slot's calendar date at midnight UTC.
func (s Slot) StartDate() time.Time {
	y, m, d := s.start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OnDate reports whether the slot starts on the given calendar date.
func (s Slot) OnDate(d time.Time) bool {
	sy, sm, sd := s.start.Date()
	dy, dm, dd := d.Date()
	return sy == dy && sm == dm && sd == dd
}

func (s Slot) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Slot) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return &ParseError{Text: string(b), Reason: "slot must be a JSON string"}
	}
	parsed, err := ParseSlot(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
