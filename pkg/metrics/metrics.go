// Package metrics defines the Prometheus collectors for vanity searches and
// serves them for scraping.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeFound = "found"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Metrics holds the vanityserve collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	SearchesTotal   *prometheus.CounterVec
	SearchDuration  prometheus.Histogram
	CandidatesTotal prometheus.Counter
	StoreHits       prometheus.Counter
	StoreMisses     prometheus.Counter
	DictionaryWords prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vanity_searches_total",
				Help: "Total number of vanity searches by outcome.",
			},
			[]string{"outcome"},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vanity_search_duration_seconds",
				Help:    "Vanity search latency in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		CandidatesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vanity_candidates_total",
				Help: "Total number of vanity numbers returned.",
			},
		),
		StoreHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vanity_store_hits_total",
				Help: "Lookups answered from the contacts store.",
			},
		),
		StoreMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vanity_store_misses_total",
				Help: "Lookups that needed a new search.",
			},
		),
		DictionaryWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "vanity_dictionary_words",
				Help: "Number of words in the dictionary index.",
			},
		),
	}

	reg.MustRegister(
		m.SearchesTotal,
		m.SearchDuration,
		m.CandidatesTotal,
		m.StoreHits,
		m.StoreMisses,
		m.DictionaryWords,
	)
	return m
}

// ObserveSearch records one finished search.
func (m *Metrics) ObserveSearch(took time.Duration, results int, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeFound
	switch {
	case err != nil:
		outcome = OutcomeError
	case results == 0:
		outcome = OutcomeEmpty
	}
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchDuration.Observe(took.Seconds())
	m.CandidatesTotal.Add(float64(results))
}

// ObserveStore records whether a lookup was served from the store.
func (m *Metrics) ObserveStore(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.StoreHits.Inc()
	} else {
		m.StoreMisses.Inc()
	}
}

// SetDictionaryWords publishes the index size.
func (m *Metrics) SetDictionaryWords(n int) {
	if m == nil {
		return
	}
	m.DictionaryWords.Set(float64(n))
}

// Handler returns the scrape handler for g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on port in the background. The returned
// function shuts the server down.
func StartServer(port int, g prometheus.Gatherer) func(context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Debugf("Metrics server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Metrics server failed: %v", err)
		}
	}()
	return srv.Shutdown
}
