package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/visit-booker/internal/domain/visit"
)

// MaxPersonAge bounds plausible dates of birth for prisoners and visitors.
const MaxPersonAge = 120

// AgeBounds returns the acceptable date-of-birth range for a person at most
// maxAgeYears old: from the start of the year maxAgeYears before asOf
// through the end of asOf's year. Shared by prisoner and visitor checks.
func AgeBounds(maxAgeYears int, asOf time.Time) (min, max time.Time) {
	min = time.Date(asOf.Year()-maxAgeYears, time.January, 1, 0, 0, 0, 0, time.UTC)
	max = time.Date(asOf.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	return min, max
}

func validDateOfBirth(dob visit.Date, asOf time.Time) bool {
	if dob.IsZero() {
		return false
	}
	min, max := AgeBounds(MaxPersonAge, asOf)
	t := dob.Time()
	return !t.Before(min) && !t.After(max)
}

// PrisonerDetails identifies the prisoner being visited.
type PrisonerDetails struct {
	FirstName   string
	LastName    string
	DateOfBirth visit.Date
	Number      string
	PrisonID    string
}

// Validate returns human-readable problems with the prisoner details.
func (p PrisonerDetails) Validate(asOf time.Time) []string {
	var problems []string
	if strings.TrimSpace(p.FirstName) == "" {
		problems = append(problems, "Prisoner first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		problems = append(problems, "Prisoner last name is required")
	}
	if !validDateOfBirth(p.DateOfBirth, asOf) {
		problems = append(problems, fmt.Sprintf("Prisoner date of birth must be less than %d years ago", MaxPersonAge))
	}
	if strings.TrimSpace(p.Number) == "" {
		problems = append(problems, "Prisoner number is required")
	}
	if strings.TrimSpace(p.PrisonID) == "" {
		problems = append(problems, "Prison is required")
	}
	return problems
}

// VisitorDetails is one requested visitor, as entered by the caller.
type VisitorDetails struct {
	FirstName   string
	LastName    string
	DateOfBirth visit.Date
}

// Validate returns human-readable problems with the visitor details.
func (v VisitorDetails) Validate(asOf time.Time) []string {
	var problems []string
	if strings.TrimSpace(v.FirstName) == "" {
		problems = append(problems, "Visitor first name is required")
	}
	if strings.TrimSpace(v.LastName) == "" {
		problems = append(problems, "Visitor last name is required")
	}
	if !validDateOfBirth(v.DateOfBirth, asOf) {
		problems = append(problems, fmt.Sprintf("Visitor date of birth must be less than %d years ago", MaxPersonAge))
	}
	return problems
}

// Age is the visitor's age in whole years as of the given date.
func (v VisitorDetails) Age(asOf time.Time) int {
	return visit.WholeYearsBetween(v.DateOfBirth.Time(), asOf)
}
