package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgretry"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/xrpwhale/internal/whale/aggregator"
	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
	"github.com/shandysiswandi/xrpwhale/internal/whale/usecase"
)

func paymentFrame(seq int64, from, to, drops string) []byte {
	return []byte(fmt.Sprintf(`{"type":"transaction","validated":true,"tx_json":{"TransactionType":"Payment",`+
		`"Account":%q,"Destination":%q,"LastLedgerSequence":%d,"DeliverMax":%q}}`, from, to, seq, drops))
}

type fakeSubscription struct {
	mu     sync.Mutex
	frames [][]byte
	err    error
	closed bool
}

func (s *fakeSubscription) Next(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	if len(s.frames) > 0 {
		frame := s.frames[0]
		s.frames = s.frames[1:]
		s.mu.Unlock()
		return frame, nil
	}
	err := s.err
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *fakeSubscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type step struct {
	sub *fakeSubscription
	err error
}

type fakeSource struct {
	mu     sync.Mutex
	script []step
	calls  int
}

func (s *fakeSource) Subscribe(ctx context.Context) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if len(s.script) == 0 {
		return &fakeSubscription{}, nil
	}

	next := s.script[0]
	s.script = s.script[1:]
	if next.err != nil {
		return nil, next.err
	}
	return next.sub, nil
}

func (s *fakeSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func fastPolicy() pkgretry.Policy {
	return pkgretry.Policy{BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestConsumer_Process(t *testing.T) {
	t.Parallel()

	agg := aggregator.New()
	stats := usecase.NewIngestStats(nil)
	c := NewConsumer(Dependency{Source: &fakeSource{}, Sink: agg, Recorder: stats})
	ctx := context.Background()

	tests := []struct {
		name  string
		frame []byte
		want  entity.Outcome
	}{
		{name: "subscribe ack", frame: []byte(`{"id":1,"result":{},"status":"success","type":"response"}`), want: entity.OutcomeFiltered},
		{name: "garbage", frame: []byte(`{"tx_json":`), want: entity.OutcomeMalformed},
		{name: "tx_json wrong shape", frame: []byte(`{"tx_json":"Payment"}`), want: entity.OutcomeMalformed},
		{name: "offer", frame: []byte(`{"tx_json":{"TransactionType":"OfferCreate","Account":"rA"}}`), want: entity.OutcomeFiltered},
		{name: "small payment", frame: paymentFrame(10, "rA", "rB", "1000"), want: entity.OutcomeFiltered},
		{name: "whale payment", frame: paymentFrame(11, "rA", "rB", "25000000000"), want: entity.OutcomeQualified},
		{name: "self transfer", frame: paymentFrame(12, "rA", "rA", "25000000000"), want: entity.OutcomeFiltered},
		{name: "issued currency", frame: []byte(`{"tx_json":{"TransactionType":"Payment","Account":"rA","Destination":"rB",` +
			`"LastLedgerSequence":13,"Amount":{"currency":"USD","issuer":"rI","value":"99999"}}}`), want: entity.OutcomeFiltered},
		{name: "no sequence", frame: []byte(`{"tx_json":{"TransactionType":"Payment","Account":"rA","Destination":"rB","Amount":"50000000"}}`), want: entity.OutcomeMalformed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Process(ctx, tt.frame), tt.name)
	}

	recent, top := agg.Snapshot()
	require.Len(t, recent, 1)
	require.Len(t, top, 1)
	assert.Equal(t, int64(11), recent[0].Sequence)
	assert.Equal(t, 25000.0, recent[0].Amount)
	assert.Equal(t, "<a href='https://xrpscan.com/account/rA' target='_blank'> rA</a>", recent[0].Sender)
	assert.Equal(t, "rB", recent[0].RecipientID)

	snap := stats.Snapshot()
	assert.Equal(t, uint64(1), snap.Outcomes[entity.OutcomeQualified])
	assert.Equal(t, uint64(3), snap.Outcomes[entity.OutcomeMalformed])
	assert.Equal(t, uint64(5), snap.Outcomes[entity.OutcomeFiltered])
	assert.Equal(t, uint64(2), snap.Reasons[entity.ReasonInvalidFrame])
	assert.Equal(t, uint64(1), snap.Reasons[entity.ReasonMissingSequence])
	assert.Equal(t, uint64(1), snap.Reasons[entity.ReasonNonNativeAmount])
	assert.Equal(t, int64(11), snap.LastSequence)
}

type panickySink struct{}

func (panickySink) Insert(entity.AggregateEntry) { panic("sink exploded") }

func (panickySink) Len() (int, int) { return 0, 0 }

func TestConsumer_ProcessRecoversFromPanics(t *testing.T) {
	t.Parallel()

	stats := usecase.NewIngestStats(nil)
	c := NewConsumer(Dependency{Source: &fakeSource{}, Sink: panickySink{}, Recorder: stats})

	got := c.Process(context.Background(), paymentFrame(1, "rA", "rB", "50000000"))
	assert.Equal(t, entity.OutcomeMalformed, got)
	assert.Equal(t, uint64(1), stats.Snapshot().Reasons[entity.ReasonInvalidFrame])
}

func TestConsumer_ReconnectsAfterTransportFailure(t *testing.T) {
	t.Parallel()

	dropped := &entity.TransportError{Op: "read", Err: errors.New("connection reset by peer")}
	first := &fakeSubscription{
		frames: [][]byte{paymentFrame(1, "rA", "rB", "50000000"), paymentFrame(2, "rA", "rB", "20000000000")},
		err:    dropped,
	}
	second := &fakeSubscription{
		frames: [][]byte{paymentFrame(3, "rC", "rD", "3000000000")},
		err:    dropped,
	}
	source := &fakeSource{script: []step{
		{sub: first},
		{err: &entity.TransportError{Op: "dial", Err: errors.New("no route to host")}},
		{sub: second},
	}}

	agg := aggregator.New()
	stats := usecase.NewIngestStats(nil)
	runner := pkgroutine.NewManager(2)
	c := NewConsumer(Dependency{
		Source:            source,
		Sink:              agg,
		Recorder:          stats,
		Runner:            runner,
		Reconnect:         fastPolicy(),
		SubscribeAttempts: 3,
	})

	c.Start(context.Background())

	require.Eventually(t, func() bool {
		return agg.Inserted() == 3 && source.Calls() >= 4
	}, 2*time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.Stop(stopCtx))
	require.NoError(t, runner.Wait())

	_, top := agg.Snapshot()
	assert.Equal(t, []int64{2, 3, 1}, []int64{top[0].Sequence, top[1].Sequence, top[2].Sequence})

	assert.True(t, first.closed)
	assert.True(t, second.closed)

	snap := stats.Snapshot()
	assert.False(t, snap.Connected)
	assert.GreaterOrEqual(t, snap.Reconnects, uint64(2))
}

func TestConsumer_KeepsRetryingWhileSourceIsDown(t *testing.T) {
	t.Parallel()

	down := &entity.TransportError{Op: "dial", Err: errors.New("refused")}
	script := make([]step, 0, 10)
	for i := 0; i < 10; i++ {
		script = append(script, step{err: down})
	}
	source := &fakeSource{script: script}

	agg := aggregator.New()
	agg.Insert(entity.NewAggregateEntry(1, "rA", "rB", 500))

	c := NewConsumer(Dependency{Source: source, Sink: agg, Reconnect: fastPolicy(), SubscribeAttempts: 2})
	c.Start(context.Background())

	require.Eventually(t, func() bool { return source.Calls() > 10 }, 2*time.Second, 5*time.Millisecond)

	recent, top := agg.Snapshot()
	assert.Len(t, recent, 1)
	assert.Len(t, top, 1)

	require.NoError(t, c.Stop(context.Background()))
}

func TestConsumer_StopBeforeStart(t *testing.T) {
	t.Parallel()

	c := NewConsumer(Dependency{Source: &fakeSource{}, Sink: aggregator.New()})
	assert.NoError(t, c.Stop(context.Background()))
}

func TestConsumer_RunWithoutSink(t *testing.T) {
	t.Parallel()

	c := NewConsumer(Dependency{Source: &fakeSource{}})
	assert.Error(t, c.Run(context.Background()))
}

// Not parallel: swaps the default logger.
func TestConsumer_StartOnCanceledContextLogsAndStops(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	source := &fakeSource{}
	c := NewConsumer(Dependency{
		Source:    source,
		Sink:      aggregator.New(),
		Runner:    pkgroutine.NewManager(1),
		Reconnect: fastPolicy(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Start(ctx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	require.NoError(t, c.Stop(stopCtx))

	assert.Contains(t, buf.String(), "feed consumer not started")
	assert.Zero(t, source.Calls())
}
