package contact

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TypeTelephoneNumber is the only customer endpoint type that can be served.
const TypeTelephoneNumber = "TELEPHONE_NUMBER"

var (
	// ErrInvalidEvent means the event carries no customer endpoint.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrUnsupportedType means the endpoint is not a phone number.
	ErrUnsupportedType = errors.New("unsupported customer type")
)

// Event is an inbound contact-center event. Field names follow the
// contact center's JSON, and msgpack uses the same names.
type Event struct {
	Name    string  `json:"Name,omitempty"`
	Details Details `json:"Details"`
}

// Details carries the contact data of an event.
type Details struct {
	ContactData ContactData `json:"ContactData"`
}

// ContactData identifies the contact and the endpoint it came from.
type ContactData struct {
	ContactID        string    `json:"ContactId,omitempty"`
	CustomerEndpoint *Endpoint `json:"CustomerEndpoint"`
}

// Endpoint is where the customer is calling from.
type Endpoint struct {
	Address string `json:"Address"`
	Type    string `json:"Type"`
}

// ParseEvent decodes a JSON contact event.
func ParseEvent(payload []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return ev, nil
}

// PhoneNumber returns the caller's number, or ErrInvalidEvent when the event
// has no endpoint and ErrUnsupportedType when the endpoint is not a phone.
func (ev Event) PhoneNumber() (string, error) {
	ep := ev.Details.ContactData.CustomerEndpoint
	if ep == nil {
		return "", ErrInvalidEvent
	}
	if ep.Type != TypeTelephoneNumber {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ep.Type)
	}
	return ep.Address, nil
}
