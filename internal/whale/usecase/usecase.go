package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgerror"
	"github.com/shandysiswandi/xrpwhale/internal/whale/aggregator"
	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
	"github.com/shandysiswandi/xrpwhale/internal/whale/filter"
	"github.com/shandysiswandi/xrpwhale/internal/whale/metrics"
)

type Windows interface {
	Snapshot() (recent, top []entity.AggregateEntry)
	Inserted() uint64
}

type StatsSource interface {
	Snapshot() IngestSnapshot
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Windows      Windows
	Stats        StatsSource
	PollInterval time.Duration
}

type Usecase struct {
	windows      Windows
	stats        StatsSource
	pollInterval time.Duration
}

func New(dep Dependency) *Usecase {
	poll := dep.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	return &Usecase{
		windows:      dep.Windows,
		stats:        dep.Stats,
		pollInterval: poll,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// GetViews returns the recent window as is and the top window filtered to
// amounts >= minAmount, keeping the descending order.
func (u *Usecase) GetViews(ctx context.Context, minAmount float64) (ViewsResult, error) {
	if u.windows == nil {
		return ViewsResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}
	if math.IsNaN(minAmount) {
		return ViewsResult{}, pkgerror.NewInvalidInput(errors.New("min_amount is not a number"))
	}

	start := time.Now()
	defer func() {
		metrics.QueryDuration.Observe(time.Since(start).Seconds())
	}()

	recent, top := u.windows.Snapshot()

	filtered := top[:0]
	for _, e := range top {
		if e.Amount >= minAmount {
			filtered = append(filtered, e)
		}
	}

	return ViewsResult{
		Recent:       recent,
		Top:          filtered,
		MinAmount:    minAmount,
		PollInterval: u.pollInterval,
	}, nil
}

func (u *Usecase) Stats(ctx context.Context) (StatsResult, error) {
	if u.windows == nil || u.stats == nil {
		return StatsResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	snap := u.stats.Snapshot()
	recent, top := u.windows.Snapshot()

	return StatsResult{
		Outcomes:           snap.Outcomes,
		Reasons:            snap.Reasons,
		Inserted:           u.windows.Inserted(),
		LastSequence:       snap.LastSequence,
		LastQualifiedAt:    snap.LastQualifiedAt,
		Connected:          snap.Connected,
		ConnectedSince:     snap.ConnectedSince,
		Reconnects:         snap.Reconnects,
		DistinctSenders:    snap.DistinctSenders,
		DistinctRecipients: snap.DistinctRecipients,
		RecentSize:         len(recent),
		TopSize:            len(top),
	}, nil
}

func (u *Usecase) Settings(ctx context.Context) (SettingsResult, error) {
	return SettingsResult{
		SliderMin:    SliderMin,
		SliderMax:    SliderMax,
		SliderStep:   SliderStep,
		SliderMarks:  sliderMarks(),
		PollInterval: u.pollInterval,
		MinQualify:   filter.MinAmount,
		RecentSize:   aggregator.RecentCapacity,
		TopSize:      aggregator.TopCapacity,
	}, nil
}
