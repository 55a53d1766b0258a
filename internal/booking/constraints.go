package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/visit-booker/internal/domain/visit"
	"github.com/example/visit-booker/internal/pvapi"
)

// DefaultAdultAge is the age threshold used when no per-prison value is
// configured.
const DefaultAdultAge = 18

// Visitor quota limits for a single visit.
const (
	MinAdults        = 1
	MaxAdults        = 3
	MaxTotalVisitors = 6
)

// SlotLister is the slice of the API the constraint engine needs.
type SlotLister interface {
	GetSlots(ctx context.Context, params pvapi.SlotsParams) ([]visit.Slot, error)
}

// Params identifies whose booking the constraints apply to.
type Params struct {
	PrisonID       string
	PrisonerNumber string
	PrisonerDOB    visit.Date
}

// Constraints decides which slots are bookable for a prison and which
// visitor combinations are eligible. Slot data is fetched once and cached
// for the instance's lifetime; build a new instance to refresh. Instances
// are not safe for concurrent use.
type Constraints struct {
	api      SlotLister
	params   Params
	adultAge int

	slots *SlotConstraints
}

func NewConstraints(api SlotLister, params Params, adultAge int) *Constraints {
	if adultAge <= 0 {
		adultAge = DefaultAdultAge
	}
	return &Constraints{api: api, params: params, adultAge: adultAge}
}

// OnSlots returns the prison's slot constraints, fetching availability on
// the first call only. liveSlots selects the live availability source and
// is honored on that first call.
func (c *Constraints) OnSlots(ctx context.Context, liveSlots bool) (*SlotConstraints, error) {
	if c.slots != nil {
		return c.slots, nil
	}
	slots, err := c.api.GetSlots(ctx, pvapi.SlotsParams{
		PrisonID:       c.params.PrisonID,
		PrisonerNumber: c.params.PrisonerNumber,
		PrisonerDOB:    c.params.PrisonerDOB,
		LiveSlots:      liveSlots,
	})
	if err != nil {
		return nil, err
	}
	c.slots = newSlotConstraints(slots)
	return c.slots, nil
}

// OnVisitors returns the quota rules at the engine's configured adult age.
func (c *Constraints) OnVisitors() VisitorConstraints {
	return c.OnVisitorsAged(c.adultAge)
}

// OnVisitorsAged returns the quota rules at an explicit adult age threshold.
func (c *Constraints) OnVisitorsAged(adultAge int) VisitorConstraints {
	return VisitorConstraints{AdultAge: adultAge}
}

// SlotConstraints is the ordered, de-duplicated availability for one prison.
type SlotConstraints struct {
	slots []visit.Slot
}

func newSlotConstraints(raw []visit.Slot) *SlotConstraints {
	slots := make([]visit.Slot, len(raw))
	copy(slots, raw)
	sort.Slice(slots, func(i, j int) bool { return slots[i].Less(slots[j]) })

	deduped := slots[:0]
	for _, s := range slots {
		if len(deduped) > 0 && deduped[len(deduped)-1].Equal(s) {
			continue
		}
		deduped = append(deduped, s)
	}
	return &SlotConstraints{slots: deduped}
}

// Slots returns the available slots in ascending start order.
func (sc *SlotConstraints) Slots() []visit.Slot {
	return sc.slots
}

// BookableSlots reports whether any slot is available at all.
func (sc *SlotConstraints) BookableSlots() bool {
	return len(sc.slots) > 0
}

// BookableSlot reports whether the given slot is one of the available ones.
func (sc *SlotConstraints) BookableSlot(s visit.Slot) bool {
	for _, candidate := range sc.slots {
		if candidate.Equal(s) {
			return true
		}
	}
	return false
}

// BookableDate reports whether any slot falls on the given calendar date.
func (sc *SlotConstraints) BookableDate(d time.Time) bool {
	for _, s := range sc.slots {
		if s.OnDate(d) {
			return true
		}
	}
	return false
}

// LastBookableDate is the latest calendar date with availability; the
// second return is false when no slots exist.
func (sc *SlotConstraints) LastBookableDate() (time.Time, bool) {
	if len(sc.slots) == 0 {
		return time.Time{}, false
	}
	return sc.slots[len(sc.slots)-1].StartDate(), true
}

// VisitorConstraints holds the age-based visitor quotas for one visit.
type VisitorConstraints struct {
	AdultAge int
}

// Validate checks a visitor combination against the quotas, accumulating
// every violated rule in priority order. An adult is a visitor whose whole-
// years age at asOf meets the adult age threshold.
func (vc VisitorConstraints) Validate(visitors []VisitorDetails, asOf time.Time) []string {
	adults := 0
	for _, v := range visitors {
		if v.Age(asOf) >= vc.AdultAge {
			adults++
		}
	}

	var violations []string
	if len(visitors) > MaxTotalVisitors {
		violations = append(violations, fmt.Sprintf("You can book a maximum of %d visitors", MaxTotalVisitors))
	}
	if adults > MaxAdults {
		violations = append(violations, fmt.Sprintf("You can book a maximum of %d visitors over the age of %d on this visit", MaxAdults, vc.AdultAge))
	}
	if adults < MinAdults {
		violations = append(violations, "There must be at least one adult visitor")
	}
	return violations
}
