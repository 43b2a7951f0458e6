package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/vanityserve/internal/logger"
	"github.com/charmbracelet/log"
)

// Messages read back to the caller.
const (
	MsgInvalidEvent    = "Invalid event"
	MsgUnsupportedType = "Unsupported customer type"
	MsgFailed          = "Unable to generate vanity numbers. Please contact administrator."
)

// Result is the reply to one contact event.
type Result struct {
	PhoneNumber string `json:"phoneNumber,omitempty" msgpack:"p,omitempty"`
	Result      string `json:"result" msgpack:"r"`
}

// Handler turns contact events into caller-facing results.
type Handler struct {
	svc    *Service
	logger *log.Logger
}

// NewHandler returns a handler backed by svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, logger: logger.New("contact")}
}

// Handle never fails: every problem becomes one of the Msg* sentences and
// is logged.
func (h *Handler) Handle(ctx context.Context, ev Event) Result {
	h.logger.Debugf("Processing contact %+v", ev.Details.ContactData.CustomerEndpoint)

	phoneNumber, err := ev.PhoneNumber()
	switch {
	case errors.Is(err, ErrInvalidEvent):
		return Result{Result: MsgInvalidEvent}
	case errors.Is(err, ErrUnsupportedType):
		h.logger.Debugf("Skipping contact: %v", err)
		return Result{Result: MsgUnsupportedType}
	}

	res := Result{PhoneNumber: phoneNumber, Result: MsgFailed}
	numbers, cached, err := h.svc.Lookup(ctx, phoneNumber)
	if err != nil {
		h.logger.Errorf("Lookup failed for %s: %v", phoneNumber, err)
		return res
	}
	if len(numbers) > 0 {
		res.Result = Message(numbers)
	}
	h.logger.Debugf("Processed contact: %s; cached: %t; result: %s", phoneNumber, cached, res.Result)
	return res
}

// HandleJSON decodes a JSON event and handles it. Undecodable payloads get
// MsgInvalidEvent along with the decode error.
func (h *Handler) HandleJSON(ctx context.Context, payload []byte) (Result, error) {
	ev, err := ParseEvent(payload)
	if err != nil {
		return Result{Result: MsgInvalidEvent}, err
	}
	return h.Handle(ctx, ev), nil
}

// Message renders the sentence listing numbers.
func Message(numbers []string) string {
	return fmt.Sprintf("Here are your %d vanity numbers: %s", len(numbers), strings.Join(numbers, ",  "))
}
