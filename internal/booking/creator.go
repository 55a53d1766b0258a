package booking

import (
	"context"
	"fmt"

	"github.com/example/visit-booker/internal/domain/visit"
	"github.com/example/visit-booker/internal/pvapi"
)

// MaxSlotOptions is how many preferred slots one booking may carry.
const MaxSlotOptions = 3

// BookingRequester is the slice of the API the creator needs.
type BookingRequester interface {
	RequestBooking(ctx context.Context, req pvapi.BookingRequest) (*visit.Visit, error)
}

// Contact is how the service reaches the lead visitor about the booking.
type Contact struct {
	EmailAddress string
	PhoneNo      string
}

// RequestCreator assembles and submits booking requests. Submission is a
// single non-idempotent POST; API errors propagate unchanged.
type RequestCreator struct {
	API BookingRequester
}

func (c RequestCreator) Create(ctx context.Context, prisoner PrisonerDetails, visitors []VisitorDetails, slotOptions []visit.Slot, contact Contact, locale string) (*visit.Visit, error) {
	if c.API == nil {
		return nil, fmt.Errorf("api is nil")
	}
	if len(slotOptions) == 0 {
		return nil, fmt.Errorf("at least one slot option is required")
	}
	if len(slotOptions) > MaxSlotOptions {
		return nil, fmt.Errorf("at most %d slot options allowed, got %d", MaxSlotOptions, len(slotOptions))
	}

	options := make([]string, 0, len(slotOptions))
	for _, s := range slotOptions {
		options = append(options, s.String())
	}

	visitorPayloads := make([]pvapi.VisitorPayload, 0, len(visitors))
	for _, v := range visitors {
		visitorPayloads = append(visitorPayloads, pvapi.VisitorPayload{
			FirstName:   v.FirstName,
			LastName:    v.LastName,
			DateOfBirth: v.DateOfBirth,
		})
	}

	return c.API.RequestBooking(ctx, pvapi.BookingRequest{
		PrisonID: prisoner.PrisonID,
		Prisoner: pvapi.PrisonerPayload{
			FirstName:   prisoner.FirstName,
			LastName:    prisoner.LastName,
			DateOfBirth: prisoner.DateOfBirth,
			Number:      prisoner.Number,
		},
		Visitors:            visitorPayloads,
		ContactEmailAddress: contact.EmailAddress,
		ContactPhoneNo:      contact.PhoneNo,
		SlotOptions:         options,
		Locale:              locale,
	})
}
