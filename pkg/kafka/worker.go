// Package kafka runs the contact handler behind a pair of Kafka topics.
// Contact events are read as JSON from the events topic and each result is
// published as JSON to the results topic under the event's key.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/bastiangx/vanityserve/internal/logger"
	"github.com/bastiangx/vanityserve/pkg/config"
	"github.com/bastiangx/vanityserve/pkg/contact"
	"github.com/charmbracelet/log"
	"github.com/segmentio/kafka-go"
)

// ErrIncompleteConfig means brokers, group or a topic is missing.
var ErrIncompleteConfig = errors.New("incomplete kafka config")

type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Worker consumes contact events and publishes their results.
type Worker struct {
	reader    reader
	writer    writer
	handler   *contact.Handler
	logger    *log.Logger
	processed atomic.Int64
}

// NewWorker connects a consumer group reader to cfg.EventsTopic and a
// writer to cfg.ResultsTopic.
func NewWorker(cfg config.KafkaConfig, h *contact.Handler) (*Worker, error) {
	if len(cfg.Brokers) == 0 || cfg.Group == "" || cfg.EventsTopic == "" || cfg.ResultsTopic == "" {
		return nil, fmt.Errorf("%w: brokers=%v group=%q events=%q results=%q",
			ErrIncompleteConfig, cfg.Brokers, cfg.Group, cfg.EventsTopic, cfg.ResultsTopic)
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.EventsTopic,
		GroupID:  cfg.Group,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.ResultsTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireAll,
	}
	return newWorker(r, w, h), nil
}

func newWorker(r reader, w writer, h *contact.Handler) *Worker {
	return &Worker{
		reader:  r,
		writer:  w,
		handler: h,
		logger:  logger.New("kafka"),
	}
}

// Run fetches and handles events until ctx is done or the reader is closed.
// A message is committed only once its result has been published.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("Worker started")
	for {
		msg, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				w.logger.Infof("Worker stopping after %d events", w.processed.Load())
				return nil
			}
			w.logger.Errorf("Failed to fetch message: %v", err)
			continue
		}

		if err := w.process(ctx, msg); err != nil {
			w.logger.Errorf("Failed to process message p%d@%d: %v", msg.Partition, msg.Offset, err)
			continue
		}
		if err := w.reader.CommitMessages(ctx, msg); err != nil {
			w.logger.Errorf("Failed to commit message p%d@%d: %v", msg.Partition, msg.Offset, err)
		}
	}
}

// process publishes the result for one event. Undecodable events still get
// a result so the caller hears back.
func (w *Worker) process(ctx context.Context, msg kafka.Message) error {
	res, err := w.handler.HandleJSON(ctx, msg.Value)
	if err != nil {
		w.logger.Warnf("Undecodable event p%d@%d: %v", msg.Partition, msg.Offset, err)
	}

	value, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	if err := w.writer.WriteMessages(ctx, kafka.Message{Key: msg.Key, Value: value}); err != nil {
		return fmt.Errorf("publishing result: %w", err)
	}
	w.processed.Add(1)
	w.logger.Debugf("Published result for key %q: %s", msg.Key, res.Result)
	return nil
}

// Processed returns how many results have been published.
func (w *Worker) Processed() int64 {
	return w.processed.Load()
}

// Close shuts the reader and flushes the writer.
func (w *Worker) Close() error {
	return errors.Join(w.reader.Close(), w.writer.Close())
}
