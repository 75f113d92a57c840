package inbound

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgerror"
	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
	"github.com/shandysiswandi/xrpwhale/internal/whale/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Views(ctx context.Context, r *http.Request) (any, error) {
	minAmount, err := parseMinAmount(r.URL.Query().Get("min_amount"))
	if err != nil {
		return nil, err
	}

	result, err := h.uc.GetViews(ctx, minAmount)
	if err != nil {
		return nil, err
	}

	return ViewsResponse{
		Recent:       toHTTPEntries(result.Recent),
		Top:          toHTTPEntries(result.Top),
		minAmount:    result.MinAmount,
		pollInterval: result.PollInterval.Milliseconds(),
	}, nil
}

func (h *HTTPEndpoint) Stats(ctx context.Context, _ *http.Request) (any, error) {
	result, err := h.uc.Stats(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := make(map[string]uint64, len(result.Outcomes))
	for k, v := range result.Outcomes {
		outcomes[string(k)] = v
	}
	reasons := make(map[string]uint64, len(result.Reasons))
	for k, v := range result.Reasons {
		reasons[string(k)] = v
	}

	resp := StatsResponse{
		Outcomes:           outcomes,
		Reasons:            reasons,
		Inserted:           result.Inserted,
		LastSequence:       result.LastSequence,
		Connected:          result.Connected,
		Reconnects:         result.Reconnects,
		DistinctSenders:    result.DistinctSenders,
		DistinctRecipients: result.DistinctRecipients,
		RecentSize:         result.RecentSize,
		TopSize:            result.TopSize,
	}
	if !result.LastQualifiedAt.IsZero() {
		resp.LastQualifiedAt = result.LastQualifiedAt.Unix()
	}
	if !result.ConnectedSince.IsZero() {
		resp.ConnectedSince = result.ConnectedSince.Unix()
	}

	return resp, nil
}

func (h *HTTPEndpoint) Settings(ctx context.Context, _ *http.Request) (any, error) {
	result, err := h.uc.Settings(ctx)
	if err != nil {
		return nil, err
	}

	return SettingsResponse{
		Slider: Slider{
			Min:   result.SliderMin,
			Max:   result.SliderMax,
			Step:  result.SliderStep,
			Marks: result.SliderMarks,
		},
		PollIntervalMS: result.PollInterval.Milliseconds(),
		MinQualify:     result.MinQualify,
		RecentSize:     result.RecentSize,
		TopSize:        result.TopSize,
	}, nil
}

// parseMinAmount defaults to the slider minimum, rejects non-numeric input and
// clamps the rest into the slider domain.
func parseMinAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return usecase.SliderMin, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, pkgerror.NewInvalidField("min_amount", errors.New("must be a finite number"))
	}

	return usecase.ClampThreshold(value), nil
}

func toHTTPEntries(entries []entity.AggregateEntry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{
			Sequence:    e.Sequence,
			Sender:      e.Sender,
			Recipient:   e.Recipient,
			SenderID:    e.SenderID,
			RecipientID: e.RecipientID,
			Amount:      e.Amount,
			Band:        entity.BandOf(e.Amount),
		})
	}
	return out
}
