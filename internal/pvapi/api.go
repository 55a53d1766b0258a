package pvapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/example/visit-booker/internal/domain/prison"
	"github.com/example/visit-booker/internal/domain/visit"
)

// API wraps the raw client with the service's typed endpoints and envelopes.
type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// SlotsParams identifies whose slot availability to list. LiveSlots selects
// the live availability source instead of the cached one; callers choose
// explicitly.
type SlotsParams struct {
	PrisonID       string
	PrisonerNumber string
	PrisonerDOB    visit.Date
	LiveSlots      bool
}

// BookingRequest is the booking-creation payload.
type BookingRequest struct {
	PrisonID            string           `json:"prison_id"`
	Prisoner            PrisonerPayload  `json:"prisoner"`
	Visitors            []VisitorPayload `json:"visitors"`
	ContactEmailAddress string           `json:"contact_email_address"`
	ContactPhoneNo      string           `json:"contact_phone_no"`
	SlotOptions         []string         `json:"slot_options"`
	Locale              string           `json:"locale"`
}

type PrisonerPayload struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth visit.Date `json:"date_of_birth"`
	Number      string     `json:"number"`
}

type VisitorPayload struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth visit.Date `json:"date_of_birth"`
}

// ListPrisons fetches every prison known to the service.
func (a *API) ListPrisons(ctx context.Context) ([]prison.Prison, error) {
	var res struct {
		Prisons []prison.Prison `json:"prisons"`
	}
	if err := a.client.Get(ctx, "/prisons", nil, &res); err != nil {
		return nil, err
	}
	return res.Prisons, nil
}

// GetPrison fetches one prison by id.
func (a *API) GetPrison(ctx context.Context, id string) (*prison.Prison, error) {
	var res struct {
		Prison prison.Prison `json:"prison"`
	}
	if err := a.client.Get(ctx, "/prisons/"+id, nil, &res); err != nil {
		return nil, err
	}
	return &res.Prison, nil
}

// GetSlots lists available slots for the prisoner at the prison.
func (a *API) GetSlots(ctx context.Context, params SlotsParams) ([]visit.Slot, error) {
	query := url.Values{
		"prison_id":       {params.PrisonID},
		"prisoner_number": {params.PrisonerNumber},
		"prisoner_dob":    {params.PrisonerDOB.String()},
		"use_nomis_slots": {strconv.FormatBool(params.LiveSlots)},
	}
	var res struct {
		Slots []visit.Slot `json:"slots"`
	}
	if err := a.client.Get(ctx, "/slots", query, &res); err != nil {
		return nil, err
	}
	return res.Slots, nil
}

// RequestBooking submits a booking request. Not idempotent, so the client
// makes exactly one attempt; errors come back unchanged.
func (a *API) RequestBooking(ctx context.Context, req BookingRequest) (*visit.Visit, error) {
	var res struct {
		Visit visit.Visit `json:"visit"`
	}
	if err := a.client.Post(ctx, "/bookings", req, &res); err != nil {
		return nil, err
	}
	return &res.Visit, nil
}

// GetVisit fetches the booking's current state by id.
func (a *API) GetVisit(ctx context.Context, id string) (*visit.Visit, error) {
	var res struct {
		Visit visit.Visit `json:"visit"`
	}
	if err := a.client.Get(ctx, "/bookings/"+id, nil, &res); err != nil {
		return nil, err
	}
	return &res.Visit, nil
}

// CancelVisit cancels the booking by id, returning its new state.
func (a *API) CancelVisit(ctx context.Context, id string) (*visit.Visit, error) {
	var res struct {
		Visit visit.Visit `json:"visit"`
	}
	if err := a.client.Delete(ctx, "/bookings/"+id, nil, &res); err != nil {
		return nil, err
	}
	return &res.Visit, nil
}
