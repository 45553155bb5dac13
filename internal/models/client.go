package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Gender is serialized by name ("Male", "Female").
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

var genders = []Gender{GenderMale, GenderFemale}

// ParseGender matches a gender name case-insensitively.
func ParseGender(s string) (Gender, error) {
	for _, g := range genders {
		if strings.EqualFold(strings.TrimSpace(s), string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// Valid reports whether g names a known gender, ignoring case.
func (g Gender) Valid() bool {
	_, err := ParseGender(string(g))
	return err == nil
}

// UnmarshalJSON accepts a gender name in any case and stores its canonical
// form. Anything other than a known name string is an error.
func (g *Gender) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("gender must be a string: %w", err)
	}
	parsed, err := ParseGender(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Client represents a customer record held by the store.
type Client struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Gender  Gender `json:"gender"`
	Phone   string `json:"phone"`
	Enabled bool   `json:"enabled"`
}

// ClientResponse is the read-only view returned to API callers.
type ClientResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Gender  Gender `json:"gender"`
	Phone   string `json:"phone"`
	Enabled bool   `json:"enabled"`
}

// NewClientResponse copies every field of c into its API view.
func NewClientResponse(c Client) ClientResponse {
	return ClientResponse{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Gender:  c.Gender,
		Phone:   c.Phone,
		Enabled: c.Enabled,
	}
}

// ClientFilter defines the available parameters for searching clients.
type ClientFilter struct {
	Name   *string
	Gender *Gender
}

// Matches reports whether c satisfies every criterion set on the filter.
// Name matching is a case-sensitive substring test.
func (f ClientFilter) Matches(c Client) bool {
	if f.Name != nil && !strings.Contains(c.Name, *f.Name) {
		return false
	}
	if f.Gender != nil && c.Gender != *f.Gender {
		return false
	}
	return true
}
