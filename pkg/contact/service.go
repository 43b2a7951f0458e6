/*
Package contact answers contact-center events with vanity numbers.

A Service looks a caller up in the contacts store and only searches when the
number has not been seen before. A Handler turns events into the sentence
read back to the caller:

	svc := contact.NewService(engine, st, contact.Options{MaxResults: 5})
	res := contact.NewHandler(svc).Handle(ctx, ev)
	// res.Result == "Here are your 5 vanity numbers: 1-86MANNJADE,  1-866COOLBED, ..."
*/
package contact

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bastiangx/vanityserve/internal/logger"
	"github.com/bastiangx/vanityserve/pkg/metrics"
	"github.com/bastiangx/vanityserve/pkg/phone"
	"github.com/bastiangx/vanityserve/pkg/store"
	"github.com/bastiangx/vanityserve/pkg/vanity"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// ErrNumberTooLong is returned for national numbers longer than the
// configured limit.
var ErrNumberTooLong = errors.New("phone number too long")

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	Region       string
	MaxResults   int
	MaxNumberLen int
	Metrics      *metrics.Metrics
}

// Service generates vanity numbers and remembers them per caller.
type Service struct {
	engine *vanity.Engine
	store  store.Store
	opts   Options
	group  singleflight.Group
	logger *log.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

type lookupResult struct {
	numbers []string
	cached  bool
}

// NewService returns a service searching with engine and remembering in st.
func NewService(engine *vanity.Engine, st store.Store, opts Options) *Service {
	if opts.Region == "" {
		opts.Region = phone.DefaultRegion
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = vanity.DefaultMaxResults
	}
	if opts.MaxNumberLen <= 0 {
		opts.MaxNumberLen = 15
	}
	return &Service{
		engine: engine,
		store:  st,
		opts:   opts,
		logger: logger.New("contact"),
	}
}

// Lookup returns the vanity numbers for phoneNumber. Known numbers are
// answered from the store and their record is written again to refresh it.
// Unknown numbers are searched with the default result count and stored.
// cached reports whether the answer came from the store.
func (s *Service) Lookup(ctx context.Context, phoneNumber string) (numbers []string, cached bool, err error) {
	num, err := s.parse(phoneNumber)
	if err != nil {
		return nil, false, err
	}
	key := num.E164()

	if numbers, ok, err := s.fromStore(ctx, key); err != nil || ok {
		return numbers, ok, err
	}

	val, err, shared := s.group.Do(key, func() (any, error) {
		if numbers, ok, err := s.fromStore(ctx, key); err != nil || ok {
			return lookupResult{numbers, ok}, err
		}
		s.misses.Add(1)
		s.opts.Metrics.ObserveStore(false)
		s.logger.Debugf("Creating new contact: %s", key)

		numbers, err := s.generate(num, s.opts.MaxResults)
		if err != nil {
			return nil, err
		}
		if err := s.store.Put(ctx, &store.Record{PhoneNumber: key, VanityNumbers: numbers}); err != nil {
			return nil, fmt.Errorf("store contact %s: %w", key, err)
		}
		return lookupResult{numbers: numbers}, nil
	})
	if err != nil {
		return nil, false, err
	}
	if shared {
		s.logger.Debugf("Lookup for %s shared an in-flight search", key)
	}
	res := val.(lookupResult)
	return res.numbers, res.cached, nil
}

// fromStore answers from the store. ok is false on a miss.
func (s *Service) fromStore(ctx context.Context, key string) ([]string, bool, error) {
	rec, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("unable to determine if contact %s exists: %w", key, err)
	}

	s.hits.Add(1)
	s.opts.Metrics.ObserveStore(true)
	s.logger.Debugf("Contact exists: %s", key)

	refreshed := &store.Record{PhoneNumber: key, VanityNumbers: rec.VanityNumbers}
	if err := s.store.Put(ctx, refreshed); err != nil {
		s.logger.Warnf("Failed to refresh contact %s: %v", key, err)
	}
	return rec.VanityNumbers, true, nil
}

// Generate searches phoneNumber with an explicit region and result count.
// An empty region means the service default. It neither reads nor writes
// the store.
func (s *Service) Generate(_ context.Context, phoneNumber, region string, maxResults int) ([]string, error) {
	if region == "" {
		region = s.opts.Region
	}
	num, err := s.parseIn(phoneNumber, region)
	if err != nil {
		return nil, err
	}
	return s.generate(num, maxResults)
}

func (s *Service) parse(phoneNumber string) (phone.Number, error) {
	return s.parseIn(phoneNumber, s.opts.Region)
}

func (s *Service) parseIn(phoneNumber, region string) (phone.Number, error) {
	num, err := phone.Parse(phoneNumber, region)
	if err != nil {
		return phone.Number{}, err
	}
	if len(num.National) > s.opts.MaxNumberLen {
		return phone.Number{}, fmt.Errorf("%w: %d digits, limit %d", ErrNumberTooLong, len(num.National), s.opts.MaxNumberLen)
	}
	return num, nil
}

func (s *Service) generate(num phone.Number, maxResults int) ([]string, error) {
	start := time.Now()
	numbers, err := s.engine.Generate(num.National, num.CountryCode, maxResults)
	s.opts.Metrics.ObserveSearch(time.Since(start), len(numbers), err)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", num.E164(), err)
	}
	return numbers, nil
}

// Stats returns store hit and miss counts since start.
func (s *Service) Stats() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}
