package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/visit-booker/internal/domain/visit"
	"github.com/example/visit-booker/internal/pvapi"
)

type fakeSlotLister struct {
	slots  []visit.Slot
	err    error
	calls  int
	params pvapi.SlotsParams
}

func (f *fakeSlotLister) GetSlots(ctx context.Context, params pvapi.SlotsParams) ([]visit.Slot, error) {
	f.calls++
	f.params = params
	return f.slots, f.err
}

func mustSlot(t *testing.T, text string) visit.Slot {
	t.Helper()
	s, err := visit.ParseSlot(text)
	require.NoError(t, err)
	return s
}

func testParams() Params {
	return Params{
		PrisonID:       "123",
		PrisonerNumber: "a1234bc",
		PrisonerDOB:    visit.NewDate(1970, time.January, 1),
	}
}

func TestOnSlotsSortsAndDeduplicates(t *testing.T) {
	lister := &fakeSlotLister{slots: []visit.Slot{
		mustSlot(t, "2015-01-02T09:00/10:00"),
		mustSlot(t, "2015-01-04T09:00/10:00"),
		mustSlot(t, "2015-01-03T09:00/10:00"),
		mustSlot(t, "2015-01-03T09:00/10:00"),
	}}

	sc, err := NewConstraints(lister, testParams(), 0).OnSlots(context.Background(), false)
	require.NoError(t, err)

	var got []string
	for _, s := range sc.Slots() {
		got = append(got, s.String())
	}
	assert.Equal(t, []string{
		"2015-01-02T09:00/10:00",
		"2015-01-03T09:00/10:00",
		"2015-01-04T09:00/10:00",
	}, got)
	assert.True(t, sc.BookableSlots())
}

func TestOnSlotsPassesParamsThrough(t *testing.T) {
	lister := &fakeSlotLister{}

	_, err := NewConstraints(lister, testParams(), 0).OnSlots(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, pvapi.SlotsParams{
		PrisonID:       "123",
		PrisonerNumber: "a1234bc",
		PrisonerDOB:    visit.NewDate(1970, time.January, 1),
		LiveSlots:      true,
	}, lister.params)
}

func TestOnSlotsCachesPerInstance(t *testing.T) {
	lister := &fakeSlotLister{slots: []visit.Slot{mustSlot(t, "2015-01-02T09:00/10:00")}}
	constraints := NewConstraints(lister, testParams(), 0)

	first, err := constraints.OnSlots(context.Background(), false)
	require.NoError(t, err)
	second, err := constraints.OnSlots(context.Background(), false)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, lister.calls)
}

func TestOnSlotsPropagatesErrors(t *testing.T) {
	lister := &fakeSlotLister{err: fmt.Errorf("boom")}
	constraints := NewConstraints(lister, testParams(), 0)

	_, err := constraints.OnSlots(context.Background(), false)
	require.EqualError(t, err, "boom")

	// A failed fetch must not poison the cache.
	lister.err = nil
	lister.slots = []visit.Slot{mustSlot(t, "2015-01-02T09:00/10:00")}
	sc, err := constraints.OnSlots(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, sc.BookableSlots())
}

func TestBookableDate(t *testing.T) {
	sc := newSlotConstraints([]visit.Slot{
		mustSlot(t, "2015-01-02T09:00/10:00"),
		mustSlot(t, "2015-01-04T09:00/10:00"),
		mustSlot(t, "2015-01-03T09:00/10:00"),
	})

	assert.True(t, sc.BookableDate(time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, sc.BookableDate(time.Date(2015, 2, 2, 0, 0, 0, 0, time.UTC)))
}

func TestBookableSlot(t *testing.T) {
	sc := newSlotConstraints([]visit.Slot{
		mustSlot(t, "2015-01-02T09:00/10:00"),
	})

	assert.True(t, sc.BookableSlot(mustSlot(t, "2015-01-02T09:00/10:00")))
	assert.False(t, sc.BookableSlot(mustSlot(t, "2015-01-02T11:00/12:00")))
}

func TestLastBookableDate(t *testing.T) {
	sc := newSlotConstraints([]visit.Slot{
		mustSlot(t, "2015-01-02T09:00/10:00"),
		mustSlot(t, "2015-01-04T09:00/10:00"),
		mustSlot(t, "2015-01-03T09:00/10:00"),
	})

	last, ok := sc.LastBookableDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2015, 1, 4, 0, 0, 0, 0, time.UTC), last)
}

func TestEmptySlotConstraints(t *testing.T) {
	sc := newSlotConstraints(nil)

	assert.False(t, sc.BookableSlots())
	_, ok := sc.LastBookableDate()
	assert.False(t, ok)
}

func TestOnVisitorsUsesConfiguredDefault(t *testing.T) {
	constraints := NewConstraints(&fakeSlotLister{}, testParams(), 0)
	assert.Equal(t, DefaultAdultAge, constraints.OnVisitors().AdultAge)

	constraints = NewConstraints(&fakeSlotLister{}, testParams(), 16)
	assert.Equal(t, 16, constraints.OnVisitors().AdultAge)
	assert.Equal(t, 13, constraints.OnVisitorsAged(13).AdultAge)
}

func visitorAged(t *testing.T, dob string) VisitorDetails {
	t.Helper()
	d, err := visit.ParseDate(dob)
	require.NoError(t, err)
	return VisitorDetails{FirstName: "Vi", LastName: "Sitor", DateOfBirth: d}
}

func TestValidateVisitorCombinations(t *testing.T) {
	asOf := time.Date(2015, 12, 1, 0, 0, 0, 0, time.UTC)
	vc := VisitorConstraints{AdultAge: 13}

	adult := visitorAged(t, "1990-04-03")
	thirteenToday := visitorAged(t, "2002-12-01")
	thirteenTomorrow := visitorAged(t, "2002-12-02")

	t.Run("one adult alone is valid", func(t *testing.T) {
		assert.Empty(t, vc.Validate([]VisitorDetails{adult}, asOf))
	})

	t.Run("three adults and three children is valid", func(t *testing.T) {
		visitors := []VisitorDetails{
			adult, adult, thirteenToday,
			thirteenTomorrow, thirteenTomorrow, thirteenTomorrow,
		}
		assert.Empty(t, vc.Validate(visitors, asOf))
	})

	t.Run("too many adults", func(t *testing.T) {
		visitors := []VisitorDetails{adult, adult, adult, thirteenToday}
		assert.Equal(t,
			[]string{"You can book a maximum of 3 visitors over the age of 13 on this visit"},
			vc.Validate(visitors, asOf))
	})

	t.Run("no adults", func(t *testing.T) {
		visitors := []VisitorDetails{thirteenTomorrow, thirteenTomorrow}
		assert.Equal(t,
			[]string{"There must be at least one adult visitor"},
			vc.Validate(visitors, asOf))
	})

	t.Run("too many visitors", func(t *testing.T) {
		visitors := []VisitorDetails{
			adult, thirteenTomorrow, thirteenTomorrow, thirteenTomorrow,
			thirteenTomorrow, thirteenTomorrow, thirteenTomorrow,
		}
		assert.Equal(t,
			[]string{"You can book a maximum of 6 visitors"},
			vc.Validate(visitors, asOf))
	})

	t.Run("violations accumulate", func(t *testing.T) {
		visitors := []VisitorDetails{
			thirteenTomorrow, thirteenTomorrow, thirteenTomorrow, thirteenTomorrow,
			thirteenTomorrow, thirteenTomorrow, thirteenTomorrow,
		}
		assert.Equal(t, []string{
			"You can book a maximum of 6 visitors",
			"There must be at least one adult visitor",
		}, vc.Validate(visitors, asOf))
	})
}
