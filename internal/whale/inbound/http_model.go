package inbound

import (
	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
)

type Entry struct {
	Sequence    int64       `json:"sequence"`
	Sender      string      `json:"sender"`
	Recipient   string      `json:"recipient"`
	SenderID    string      `json:"sender_id"`
	RecipientID string      `json:"recipient_id"`
	Amount      float64     `json:"amount"`
	Band        entity.Band `json:"band"`
}

type ViewsResponse struct {
	Recent       []Entry `json:"recent"`
	Top          []Entry `json:"top"`
	minAmount    float64
	pollInterval int64
}

func (r ViewsResponse) Meta() map[string]any {
	return map[string]any{
		"min_amount":       r.minAmount,
		"poll_interval_ms": r.pollInterval,
	}
}

type StatsResponse struct {
	Outcomes           map[string]uint64 `json:"outcomes"`
	Reasons            map[string]uint64 `json:"reasons"`
	Inserted           uint64            `json:"inserted"`
	LastSequence       int64             `json:"last_sequence"`
	LastQualifiedAt    int64             `json:"last_qualified_at,omitempty"`
	Connected          bool              `json:"connected"`
	ConnectedSince     int64             `json:"connected_since,omitempty"`
	Reconnects         uint64            `json:"reconnects"`
	DistinctSenders    uint64            `json:"distinct_senders"`
	DistinctRecipients uint64            `json:"distinct_recipients"`
	RecentSize         int               `json:"recent_size"`
	TopSize            int               `json:"top_size"`
}

type Slider struct {
	Min   float64   `json:"min"`
	Max   float64   `json:"max"`
	Step  float64   `json:"step"`
	Marks []float64 `json:"marks"`
}

type SettingsResponse struct {
	Slider         Slider  `json:"slider"`
	PollIntervalMS int64   `json:"poll_interval_ms"`
	MinQualify     float64 `json:"min_qualify"`
	RecentSize     int     `json:"recent_size"`
	TopSize        int     `json:"top_size"`
}
