package prison

// Prison is the read model returned by the booking service's prison
// endpoints. Contact details are shown to users alongside a visit.
type Prison struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Address         string `json:"address"`
	Postcode        string `json:"postcode"`
	EmailAddress    string `json:"email_address"`
	PhoneNo         string `json:"phone_no"`
	PrisonFinderURL string `json:"prison_finder_url"`
	AdultAge        int    `json:"adult_age"`
}
