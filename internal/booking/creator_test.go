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

type fakeBookingAPI struct {
	req   pvapi.BookingRequest
	visit *visit.Visit
	err   error
	calls int
}

func (f *fakeBookingAPI) RequestBooking(ctx context.Context, req pvapi.BookingRequest) (*visit.Visit, error) {
	f.calls++
	f.req = req
	return f.visit, f.err
}

func testPrisoner() PrisonerDetails {
	return PrisonerDetails{
		FirstName:   "Oscar",
		LastName:    "Wilde",
		DateOfBirth: visit.NewDate(1970, time.January, 1),
		Number:      "a1234bc",
		PrisonID:    "123",
	}
}

func TestCreateBuildsBookingRequest(t *testing.T) {
	api := &fakeBookingAPI{visit: &visit.Visit{ID: "abc-123", ProcessingState: visit.StateRequested}}
	creator := RequestCreator{API: api}

	visitors := []VisitorDetails{
		{FirstName: "Ada", LastName: "Lovelace", DateOfBirth: visit.NewDate(1985, time.December, 10)},
		{FirstName: "Jim", LastName: "Johnson", DateOfBirth: visit.NewDate(2002, time.December, 1)},
	}
	slots := []visit.Slot{
		mustSlot(t, "2015-10-23T14:00/15:30"),
		mustSlot(t, "2015-10-24T10:00/11:00"),
	}
	contact := Contact{EmailAddress: "visitor@example.com", PhoneNo: "01154960123"}

	v, err := creator.Create(context.Background(), testPrisoner(), visitors, slots, contact, "en")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", v.ID)

	assert.Equal(t, "123", api.req.PrisonID)
	assert.Equal(t, "Oscar", api.req.Prisoner.FirstName)
	assert.Equal(t, "a1234bc", api.req.Prisoner.Number)
	assert.Equal(t, "visitor@example.com", api.req.ContactEmailAddress)
	assert.Equal(t, "01154960123", api.req.ContactPhoneNo)
	assert.Equal(t, "en", api.req.Locale)
	assert.Equal(t, []string{"2015-10-23T14:00/15:30", "2015-10-24T10:00/11:00"}, api.req.SlotOptions)
	require.Len(t, api.req.Visitors, 2)
	assert.Equal(t, "Ada", api.req.Visitors[0].FirstName)
	assert.Equal(t, "2002-12-01", api.req.Visitors[1].DateOfBirth.String())
}

func TestCreatePropagatesAPIErrors(t *testing.T) {
	api := &fakeBookingAPI{err: fmt.Errorf("Unexpected status 500 calling POST /api/bookings: broken")}
	creator := RequestCreator{API: api}

	_, err := creator.Create(context.Background(), testPrisoner(),
		[]VisitorDetails{{FirstName: "Ada", LastName: "Lovelace", DateOfBirth: visit.NewDate(1985, time.December, 10)}},
		[]visit.Slot{mustSlot(t, "2015-10-23T14:00/15:30")},
		Contact{EmailAddress: "visitor@example.com", PhoneNo: "01154960123"}, "en")

	require.EqualError(t, err, "Unexpected status 500 calling POST /api/bookings: broken")
	assert.Equal(t, 1, api.calls)
}

func TestCreateRejectsBadSlotOptionCounts(t *testing.T) {
	creator := RequestCreator{API: &fakeBookingAPI{}}
	visitors := []VisitorDetails{{FirstName: "Ada", LastName: "Lovelace", DateOfBirth: visit.NewDate(1985, time.December, 10)}}
	contact := Contact{EmailAddress: "visitor@example.com", PhoneNo: "01154960123"}

	_, err := creator.Create(context.Background(), testPrisoner(), visitors, nil, contact, "en")
	assert.ErrorContains(t, err, "at least one slot option")

	four := []visit.Slot{
		mustSlot(t, "2015-10-23T14:00/15:30"),
		mustSlot(t, "2015-10-24T14:00/15:30"),
		mustSlot(t, "2015-10-25T14:00/15:30"),
		mustSlot(t, "2015-10-26T14:00/15:30"),
	}
	_, err = creator.Create(context.Background(), testPrisoner(), visitors, four, contact, "en")
	assert.ErrorContains(t, err, "at most 3 slot options")
}

func TestCreateRequiresAPI(t *testing.T) {
	creator := RequestCreator{}
	_, err := creator.Create(context.Background(), testPrisoner(), nil,
		[]visit.Slot{mustSlot(t, "2015-10-23T14:00/15:30")}, Contact{}, "en")
	assert.ErrorContains(t, err, "api is nil")
}
