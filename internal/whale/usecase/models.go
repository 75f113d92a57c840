package usecase

import (
	"time"

	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
)

// Slider domain used by the dashboard for the top window threshold.
const (
	SliderMin      = 100.0
	SliderMax      = 100000.0
	SliderStep     = 100.0
	SliderMarkStep = 19800.0

	DefaultPollInterval = 5000 * time.Millisecond
)

type ViewsResult struct {
	Recent       []entity.AggregateEntry
	Top          []entity.AggregateEntry
	MinAmount    float64
	PollInterval time.Duration
}

type StatsResult struct {
	Outcomes           map[entity.Outcome]uint64
	Reasons            map[entity.Reason]uint64
	Inserted           uint64
	LastSequence       int64
	LastQualifiedAt    time.Time
	Connected          bool
	ConnectedSince     time.Time
	Reconnects         uint64
	DistinctSenders    uint64
	DistinctRecipients uint64
	RecentSize         int
	TopSize            int
}

type SettingsResult struct {
	SliderMin    float64
	SliderMax    float64
	SliderStep   float64
	SliderMarks  []float64
	PollInterval time.Duration
	MinQualify   float64
	RecentSize   int
	TopSize      int
}

// ClampThreshold snaps v into the slider domain.
func ClampThreshold(v float64) float64 {
	switch {
	case v < SliderMin:
		return SliderMin
	case v > SliderMax:
		return SliderMax
	default:
		return v
	}
}

func sliderMarks() []float64 {
	marks := make([]float64, 0, 6)
	for v := SliderMin; v <= SliderMax; v += SliderMarkStep {
		marks = append(marks, v)
	}
	return marks
}
