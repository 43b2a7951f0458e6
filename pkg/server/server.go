package server

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/vanityserve/internal/logger"
	"github.com/bastiangx/vanityserve/pkg/config"
	"github.com/bastiangx/vanityserve/pkg/contact"
	"github.com/bastiangx/vanityserve/pkg/phone"
	"github.com/bastiangx/vanityserve/pkg/vanity"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for vanity lookups
type Server struct {
	svc          *contact.Service
	handler      *contact.Handler
	config       *config.Config
	dec          *msgpack.Decoder
	enc          *msgpack.Encoder
	out          *bufio.Writer
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server using stdin/stdout for IPC.
func NewServer(svc *contact.Service, cfg *config.Config) *Server {
	return NewServerWithIO(svc, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing
// replies to w. A nil cfg means config.DefaultConfig.
func NewServerWithIO(svc *contact.Service, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := bufio.NewWriter(w)
	return &Server{
		svc:     svc,
		handler: contact.NewHandler(svc),
		config:  cfg,
		dec:     msgpack.NewDecoder(bufio.NewReader(r)),
		enc:     msgpack.NewEncoder(out),
		out:     out,
		logger:  logger.New("server"),
	}
}

// Start sends the ready message and serves requests until the input ends
// or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting Server.")
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.logger.Errorf("Reading from stdin: %v", err)
			return fmt.Errorf("failed to read request: %w", err)
		}
		s.handleRequest(ctx, raw)
	}
}

func (s *Server) handleRequest(ctx context.Context, raw msgpack.RawMessage) {
	s.requestCount++

	req, err := decodeRequest(raw)
	if err != nil {
		s.logger.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "Invalid msgpack request", 400)
		return
	}

	switch req.Action {
	case "", ActionGenerate:
		s.handleGenerate(ctx, req)
	case ActionEvent:
		s.handleEvent(ctx, req)
	case ActionHealth:
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok", Requests: s.requestCount})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

// decodeRequest falls back to json tags so contact events keep their
// contact-center field names on the wire.
func decodeRequest(raw msgpack.RawMessage) (Request, error) {
	var req Request
	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	dec.SetCustomStructTag("json")
	err := dec.Decode(&req)
	return req, err
}

// handleGenerate answers through the store unless the request asks for a
// specific region or limit.
func (s *Server) handleGenerate(ctx context.Context, req Request) {
	if req.Number == "" {
		s.sendError(req.ID, "Missing 'n' parameter", 400)
		return
	}

	start := time.Now()
	var (
		numbers []string
		cached  bool
		err     error
	)
	if req.Limit <= 0 && req.Region == "" {
		numbers, cached, err = s.svc.Lookup(ctx, req.Number)
	} else {
		numbers, err = s.svc.Generate(ctx, req.Number, req.Region, s.config.ClampLimit(req.Limit))
	}
	elapsed := time.Since(start)

	if err != nil {
		s.logger.Debugf("Request %s failed: %v", req.ID, err)
		s.sendError(req.ID, err.Error(), errorCode(err))
		return
	}
	if numbers == nil {
		numbers = []string{}
	}

	s.sendResponse(GenerateResponse{
		ID:        req.ID,
		Numbers:   numbers,
		Count:     len(numbers),
		Cached:    cached,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleEvent(ctx context.Context, req Request) {
	if req.Event == nil {
		s.sendResponse(EventResponse{ID: req.ID, Result: contact.MsgInvalidEvent})
		return
	}
	res := s.handler.Handle(ctx, *req.Event)
	s.sendResponse(EventResponse{ID: req.ID, PhoneNumber: res.PhoneNumber, Result: res.Result})
}

// errorCode maps caller mistakes to 400 and the rest to 500.
func errorCode(err error) int {
	switch {
	case errors.Is(err, vanity.ErrInvalidInput),
		errors.Is(err, phone.ErrUnparsable),
		errors.Is(err, contact.ErrNumberTooLong),
		errors.Is(err, contact.ErrInvalidEvent):
		return 400
	}
	return 500
}

// sendResponse encodes one reply and flushes it so the client sees it
// before the next request is read.
func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.logger.Errorf("Marshaling response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
