package usecase

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/axiomhq/hyperloglog"

	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgerror"
	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
)

// IngestStats counts what the feed consumer did with each record. Distinct
// accounts are estimated with HyperLogLog so memory stays flat.
type IngestStats struct {
	mu sync.Mutex

	clock           Clock
	outcomes        map[entity.Outcome]uint64
	reasons         map[entity.Reason]uint64
	lastSequence    int64
	lastQualifiedAt time.Time
	connected       bool
	connectedSince  time.Time
	reconnects      uint64
	senders         *hyperloglog.Sketch
	recipients      *hyperloglog.Sketch
}

type IngestSnapshot struct {
	Outcomes           map[entity.Outcome]uint64
	Reasons            map[entity.Reason]uint64
	LastSequence       int64
	LastQualifiedAt    time.Time
	Connected          bool
	ConnectedSince     time.Time
	Reconnects         uint64
	DistinctSenders    uint64
	DistinctRecipients uint64
}

func NewIngestStats(clock Clock) *IngestStats {
	if clock == nil {
		clock = realClock{}
	}

	return &IngestStats{
		clock:      clock,
		outcomes:   make(map[entity.Outcome]uint64),
		reasons:    make(map[entity.Reason]uint64),
		senders:    hyperloglog.New14(),
		recipients: hyperloglog.New14(),
	}
}

// Observe counts one classified record.
func (s *IngestStats) Observe(outcome entity.Outcome, reason entity.Reason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outcomes[outcome]++
	if reason != entity.ReasonNone {
		s.reasons[reason]++
	}
}

// Qualified records an entry that reached the windows.
func (s *IngestStats) Qualified(e entity.AggregateEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSequence = e.Sequence
	s.lastQualifiedAt = s.clock.Now()
	s.senders.Insert([]byte(e.SenderID))
	s.recipients.Insert([]byte(e.RecipientID))
}

// SetConnected tracks the feed subscription state. Every transition to
// connected after the first one counts as a reconnect.
func (s *IngestStats) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if connected == s.connected {
		return
	}

	s.connected = connected
	if !connected {
		return
	}

	if !s.connectedSince.IsZero() {
		s.reconnects++
	}
	s.connectedSince = s.clock.Now()
}

// Ready fails with pkgerror.ErrNotReady while the feed is not subscribed.
func (s *IngestStats) Ready(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return pkgerror.ErrNotReady
	}
	return nil
}

func (s *IngestStats) Snapshot() IngestSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return IngestSnapshot{
		Outcomes:           maps.Clone(s.outcomes),
		Reasons:            maps.Clone(s.reasons),
		LastSequence:       s.lastSequence,
		LastQualifiedAt:    s.lastQualifiedAt,
		Connected:          s.connected,
		ConnectedSince:     s.connectedSince,
		Reconnects:         s.reconnects,
		DistinctSenders:    s.senders.Estimate(),
		DistinctRecipients: s.recipients.Estimate(),
	}
}
