package inbound

import (
	"bytes"
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed dashboard.html
var dashboardHTML string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

type dashboardData struct {
	Title          string
	PollIntervalMS int64
	SliderMin      float64
	SliderMax      float64
	SliderStep     float64
	Marks          []float64
}

func (h *HTTPEndpoint) Dashboard(w http.ResponseWriter, r *http.Request) {
	settings, err := h.uc.Settings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load dashboard settings", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, dashboardData{
		Title:          "Whale watcher",
		PollIntervalMS: settings.PollInterval.Milliseconds(),
		SliderMin:      settings.SliderMin,
		SliderMax:      settings.SliderMax,
		SliderStep:     settings.SliderStep,
		Marks:          settings.SliderMarks,
	}); err != nil {
		slog.ErrorContext(r.Context(), "failed to render dashboard", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
