package kernel

import (
	"strings"

	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

// StationCodeMaxLength bounds station codes so they stay usable as routing keys
// and database index values.
const StationCodeMaxLength = 32

// ErrStationIsNotConstructed is returned when attempting to use an improperly
// initialized Station. Stations must be created via NewStation.
var ErrStationIsNotConstructed = errs.NewValueIsRequiredError(
	"station must be created via the NewStation constructor")

// Station identifies a preparation station (grill, fryer, expo, bar) as a
// validated, normalized code. Station is an immutable value object; the zero
// value is invalid and fails validation.
//
// Example:
//
//	station, err := kernel.NewStation("Grill")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(station.Code()) // Output: grill
type Station struct { //nolint:recvcheck //using for validation
	code  string
	guard guard.ConstructorGuard
}

// NewStation creates a Station from a free-form code. The code is trimmed and
// lowercased; it must be non-empty and at most StationCodeMaxLength characters.
func NewStation(code string) (Station, error) {
	station := Station{
		guard: guard.NewConstructorGuard(),
	}

	if err := station.setCode(code); err != nil {
		return Station{}, err
	}

	return station, nil
}

// Validate ensures the Station was created through NewStation.
func (s Station) Validate() error {
	if err := s.guard.Validate(ErrStationIsNotConstructed); err != nil {
		return err
	}
	if s.code == "" {
		return ErrStationIsNotConstructed
	}
	return nil
}

// Code returns the normalized station code.
func (s Station) Code() string {
	return s.code
}

// String implements fmt.Stringer.
func (s Station) String() string {
	return s.code
}

// IsEqual compares two stations by normalized code.
func (s Station) IsEqual(other Station) bool {
	return s.code == other.code
}

func (s *Station) setCode(code string) error {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return errs.NewValueIsRequiredError("station code")
	}
	if len(normalized) > StationCodeMaxLength {
		return errs.NewValueIsOutOfRangeError(
			"station code length", len(normalized), 1, StationCodeMaxLength)
	}

	s.code = normalized
	return nil
}
