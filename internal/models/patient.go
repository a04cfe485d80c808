package models

import "strings"

const guestPrefix = "guest:"

// Patient is the identity attached to an order at checkout time.
type Patient struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// GuestPatient returns the anonymous identity bound to a browser session.
func GuestPatient(sessionID string) Patient {
	return Patient{ID: guestPrefix + sessionID}
}

// IsGuest reports whether the patient was not signed in.
func (p Patient) IsGuest() bool {
	return strings.HasPrefix(p.ID, guestPrefix)
}
