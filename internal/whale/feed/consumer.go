package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgretry"
	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
	"github.com/shandysiswandi/xrpwhale/internal/whale/filter"
	"github.com/shandysiswandi/xrpwhale/internal/whale/metrics"
)

// Source opens a subscription to the upstream transactions stream.
type Source interface {
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription yields raw frames in arrival order.
type Subscription interface {
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

type Sink interface {
	Insert(e entity.AggregateEntry)
	Len() (recent, top int)
}

type Recorder interface {
	Observe(outcome entity.Outcome, reason entity.Reason)
	Qualified(e entity.AggregateEntry)
	SetConnected(connected bool)
}

type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error) bool
}

type Dependency struct {
	Source   Source
	Sink     Sink
	Recorder Recorder
	Runner   Runner

	// Reconnect drives the wait between sessions; the attempt counter resets
	// once a session has delivered frames.
	Reconnect pkgretry.Policy
	// SubscribeAttempts bounds the subscribe retries inside one session.
	SubscribeAttempts int
}

type Consumer struct {
	source            Source
	sink              Sink
	recorder          Recorder
	runner            Runner
	reconnect         pkgretry.Policy
	subscribeAttempts int

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewConsumer(dep Dependency) *Consumer {
	attempts := dep.SubscribeAttempts
	if attempts < 1 {
		attempts = 3
	}

	recorder := dep.Recorder
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Consumer{
		source:            dep.Source,
		sink:              dep.Sink,
		recorder:          recorder,
		runner:            dep.Runner,
		reconnect:         dep.Reconnect,
		subscribeAttempts: attempts,
	}
}

// Start runs the consumer in the background until ctx ends or Stop is called.
func (c *Consumer) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != nil {
		return
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	done := c.done

	run := func(ctx context.Context) error {
		defer close(done)
		return c.Run(ctx)
	}

	if c.runner != nil {
		if !c.runner.Go(ctx, run) {
			slog.WarnContext(ctx, "feed consumer not started", "because", context.Cause(ctx))
			close(done)
		}
		return
	}
	go func() { _ = run(ctx) }()
}

func (c *Consumer) Stop(ctx context.Context) error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run consumes sessions until ctx ends. Transport failures lead to a
// reconnect after a backoff; they never end the loop.
func (c *Consumer) Run(ctx context.Context) error {
	if c.source == nil || c.sink == nil {
		return errors.New("feed consumer: missing source or sink")
	}

	attempt := 0
	for {
		delivered, err := c.session(ctx)
		if ctx.Err() != nil {
			slog.InfoContext(ctx, "feed consumer stopped")
			return nil
		}

		if delivered > 0 {
			attempt = 0
		}
		attempt++

		wait := c.reconnect.Delay(attempt)
		slog.WarnContext(ctx, "feed session ended, reconnecting",
			"error", err, "frames", delivered, "attempt", attempt, "wait", wait.String())

		if !pkgretry.Sleep(ctx, wait) {
			slog.InfoContext(ctx, "feed consumer stopped")
			return nil
		}
		metrics.FeedReconnects.Inc()
	}
}

func (c *Consumer) session(ctx context.Context) (int, error) {
	var sub Subscription
	err := pkgretry.Do(ctx, pkgretry.Policy{
		MaxAttempts: c.subscribeAttempts,
		BaseDelay:   c.reconnect.BaseDelay,
		MaxDelay:    c.reconnect.MaxDelay,
		Jitter:      c.reconnect.Jitter,
		Classify: func(err error) pkgretry.Class {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return pkgretry.Fatal
			}
			return pkgretry.Retryable
		},
		OnRetry: func(attempt int, wait time.Duration, err error) {
			countTransportError(err)
			slog.WarnContext(ctx, "feed subscribe failed", "attempt", attempt, "wait", wait.String(), "error", err)
		},
	}, func(ctx context.Context) error {
		s, err := c.source.Subscribe(ctx)
		if err != nil {
			return err
		}
		sub = s
		return nil
	})
	if err != nil {
		countTransportError(err)
		return 0, err
	}
	defer func() {
		if err := sub.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close feed subscription", "error", err)
		}
	}()

	c.recorder.SetConnected(true)
	metrics.FeedConnected.Set(1)
	defer func() {
		c.recorder.SetConnected(false)
		metrics.FeedConnected.Set(0)
	}()

	delivered := 0
	for {
		raw, err := sub.Next(ctx)
		if err != nil {
			countTransportError(err)
			return delivered, err
		}

		delivered++
		c.Process(ctx, raw)
	}
}

// Process classifies one frame and inserts it when it qualifies. It never
// panics or returns an error; every frame ends in exactly one outcome.
func (c *Consumer) Process(ctx context.Context, raw []byte) (outcome entity.Outcome) {
	reason := entity.ReasonNone
	defer func() {
		if rvr := recover(); rvr != nil {
			outcome, reason = entity.OutcomeMalformed, entity.ReasonInvalidFrame
			slog.ErrorContext(ctx, "panic while processing feed record", "because", fmt.Sprint(rvr))
		}
		c.recorder.Observe(outcome, reason)
		metrics.RecordsProcessed.WithLabelValues(string(outcome)).Inc()
		if reason != entity.ReasonNone {
			metrics.RecordsSkipped.WithLabelValues(string(reason)).Inc()
		}
	}()

	rec, err := Decode(raw)
	if err != nil {
		reason = entity.ReasonInvalidFrame
		slog.DebugContext(ctx, "skip undecodable feed record", "error", err)
		return entity.OutcomeMalformed
	}

	d := filter.Classify(rec)
	reason = d.Reason
	switch d.Outcome {
	case entity.OutcomeQualified:
		entry := entity.NewAggregateEntry(d.Sequence, d.Sender, d.Recipient, d.Amount)
		c.sink.Insert(entry)
		c.recorder.Qualified(entry)

		recent, top := c.sink.Len()
		metrics.WindowSize.WithLabelValues("recent").Set(float64(recent))
		metrics.WindowSize.WithLabelValues("top").Set(float64(top))
		metrics.WhaleAmount.Observe(d.Amount)

		slog.DebugContext(ctx, "whale payment", "sequence", d.Sequence, "sender", d.Sender,
			"recipient", d.Recipient, "amount_xrp", d.Amount)
	case entity.OutcomeMalformed:
		slog.DebugContext(ctx, "skip malformed feed record", "reason", d.Reason, "error", d.Err)
	default:
		if d.Err != nil {
			slog.DebugContext(ctx, "skip feed record", "reason", d.Reason, "error", d.Err)
		}
	}

	return d.Outcome
}

func countTransportError(err error) {
	var terr *entity.TransportError
	if errors.As(err, &terr) {
		metrics.FeedErrors.WithLabelValues(terr.Op).Inc()
	}
}

type noopRecorder struct{}

func (noopRecorder) Observe(entity.Outcome, entity.Reason) {}

func (noopRecorder) Qualified(entity.AggregateEntry) {}

func (noopRecorder) SetConnected(bool) {}
