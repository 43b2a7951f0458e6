/*
Package server implements msgpack IPC for vanity number lookups.

Clients write msgpack maps to stdin and read one msgpack map per request
from stdout. Requests are handled one at a time in arrival order, and every
reply echoes the request ID.

# IPC

On start the server writes a ready message:

	{"status": "ready"}

A generate request names a phone number, and optionally a region for
numbers without a country code and a result limit:

	{"id": "req_001", "n": "+1-866-266-5233", "l": 3}

The reply lists the formatted vanity numbers, best first, plus the search
time in microseconds:

	{"id": "req_001", "v": ["1-86MANNJADE", "1-866AMOKADD", "1-866AMOKBED"], "c": 3, "t": 412}

Without "l" and "r" the request goes through the store: a number seen
before is answered from it and "k" is set on the reply.

Contact events carry the same document the contact center sends, under "e":

	{"id": "evt_001", "a": "event", "e": {"Details": {"ContactData": {"CustomerEndpoint": {"Address": "+18662665233", "Type": "TELEPHONE_NUMBER"}}}}}

and get the sentence that would be read back to the caller:

	{"id": "evt_001", "p": "+18662665233", "r": "Here are your 5 vanity numbers: ..."}

Failures reply with an error message and an HTTP-like code, 400 for bad
input and 500 for everything else:

	{"id": "req_002", "e": "invalid phone number: ...", "c": 400}
*/
package server

import "github.com/bastiangx/vanityserve/pkg/contact"

// Request actions.
const (
	ActionGenerate = "generate"
	ActionEvent    = "event"
	ActionHealth   = "health"
)

// Request is one inbound message. Action defaults to ActionGenerate.
type Request struct {
	ID     string         `msgpack:"id"`
	Action string         `msgpack:"a,omitempty"`
	Number string         `msgpack:"n,omitempty"`
	Region string         `msgpack:"r,omitempty"`
	Limit  int            `msgpack:"l,omitempty"`
	Event  *contact.Event `msgpack:"e,omitempty"`
}

// GenerateResponse answers a generate request.
type GenerateResponse struct {
	ID        string   `msgpack:"id"`
	Numbers   []string `msgpack:"v"`
	Count     int      `msgpack:"c"`
	Cached    bool     `msgpack:"k,omitempty"`
	TimeTaken int64    `msgpack:"t"`
}

// EventResponse answers an event request.
type EventResponse struct {
	ID          string `msgpack:"id"`
	PhoneNumber string `msgpack:"p,omitempty"`
	Result      string `msgpack:"r"`
}

// StatusResponse is sent on start and for health checks.
type StatusResponse struct {
	ID       string `msgpack:"id,omitempty"`
	Status   string `msgpack:"status"`
	Requests int    `msgpack:"requests,omitempty"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
