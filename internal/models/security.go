// Package models defines the data shapes of the csfin portfolio ledger:
// securities, quotes, persisted operation records, and the application
// snapshot document.
package models

import (
	"fmt"
	"regexp"
	"strings"
)

var isinPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}\d$`)

// Security identifies a tradable instrument. Immutable once admitted to the
// security master.
type Security struct {
	ISIN        string `json:"isin"`
	NSIN        string `json:"nsin"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Currency    string `json:"currency,omitempty"`
}

// Validate checks the record's shape: ISIN format and check digit, 6-char
// NSIN, non-empty name, 2-letter country code.
func (s Security) Validate() error {
	if err := ValidateISIN(s.ISIN); err != nil {
		return err
	}
	if len(s.NSIN) != 6 {
		return fmt.Errorf("invalid NSIN %q: expected 6 characters", s.NSIN)
	}
	if s.Name == "" {
		return fmt.Errorf("security %s: name must not be empty", s.ISIN)
	}
	if len(s.CountryCode) != 2 || strings.ToUpper(s.CountryCode) != s.CountryCode {
		return fmt.Errorf("security %s: invalid country code %q", s.ISIN, s.CountryCode)
	}
	return nil
}

// ValidateISIN checks the 12-character ISIN shape and its Luhn check digit.
func ValidateISIN(isin string) error {
	if !isinPattern.MatchString(isin) {
		return fmt.Errorf("invalid ISIN format: %q", isin)
	}

	// Expand letters to their numeric values (A=10 .. Z=35), then run the
	// Luhn algorithm over the resulting digit string, check digit included.
	var digits []int
	for _, r := range isin {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		default:
			v := int(r-'A') + 10
			digits = append(digits, v/10, v%10)
		}
	}

	sum := 0
	double := true // start doubling at the digit left of the check digit
	for i := len(digits) - 2; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	check := (10 - sum%10) % 10
	if check != digits[len(digits)-1] {
		return fmt.Errorf("invalid ISIN check digit: %q", isin)
	}
	return nil
}

// SecurityRepository manages the security master, enforcing uniqueness on
// both ISIN and NSIN.
type SecurityRepository struct {
	securities []Security
}

// NewSecurityRepository creates an empty security master.
func NewSecurityRepository() *SecurityRepository {
	return &SecurityRepository{}
}

// Add admits a security to the master. Invalid records are rejected with an
// error; records whose ISIN or NSIN is already present are silently skipped.
func (r *SecurityRepository) Add(security Security) error {
	if err := security.Validate(); err != nil {
		return err
	}
	if r.HasISIN(security.ISIN) || r.HasNSIN(security.NSIN) {
		return nil
	}
	r.securities = append(r.securities, security)
	return nil
}

// GetByISIN looks up a security by ISIN.
func (r *SecurityRepository) GetByISIN(isin string) (Security, bool) {
	for _, s := range r.securities {
		if s.ISIN == isin {
			return s, true
		}
	}
	return Security{}, false
}

// GetByNSIN looks up a security by NSIN.
func (r *SecurityRepository) GetByNSIN(nsin string) (Security, bool) {
	for _, s := range r.securities {
		if s.NSIN == nsin {
			return s, true
		}
	}
	return Security{}, false
}

// HasISIN reports whether a security with the given ISIN is stored.
func (r *SecurityRepository) HasISIN(isin string) bool {
	_, ok := r.GetByISIN(isin)
	return ok
}

// HasNSIN reports whether a security with the given NSIN is stored.
func (r *SecurityRepository) HasNSIN(nsin string) bool {
	_, ok := r.GetByNSIN(nsin)
	return ok
}

// All returns a copy of the stored securities.
func (r *SecurityRepository) All() []Security {
	out := make([]Security, len(r.securities))
	copy(out, r.securities)
	return out
}

// Len returns the number of stored securities.
func (r *SecurityRepository) Len() int {
	return len(r.securities)
}
