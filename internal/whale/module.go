package whale

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgretry"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkguid"
	"github.com/shandysiswandi/xrpwhale/internal/whale/aggregator"
	"github.com/shandysiswandi/xrpwhale/internal/whale/feed"
	"github.com/shandysiswandi/xrpwhale/internal/whale/inbound"
	"github.com/shandysiswandi/xrpwhale/internal/whale/usecase"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	RequestID pkguid.NumberID

	// Source replaces the websocket feed, mainly for tests.
	Source feed.Source
}

func New(dep Dependency) (func(context.Context) error, error) {
	if dep.Config == nil || dep.Router == nil {
		return nil, errors.New("whale: config and router are required")
	}

	windows := aggregator.New()
	stats := usecase.NewIngestStats(nil)

	source := dep.Source
	if source == nil {
		source = feed.NewWebsocketSource(feed.WebsocketConfig{
			URL:          dep.Config.GetString("whale.feed.url"),
			Streams:      dep.Config.GetArray("whale.feed.streams"),
			PingInterval: millis(dep.Config.GetInt("whale.feed.ping_interval_ms")),
			ReadTimeout:  millis(dep.Config.GetInt("whale.feed.read_timeout_ms")),
			IDs:          dep.RequestID,
		})
	}

	consumer := feed.NewConsumer(feed.Dependency{
		Source:   source,
		Sink:     windows,
		Recorder: stats,
		Runner:   dep.Goroutine,
		Reconnect: pkgretry.Policy{
			BaseDelay: millis(dep.Config.GetInt("whale.feed.backoff.base_ms")),
			MaxDelay:  millis(dep.Config.GetInt("whale.feed.backoff.max_ms")),
			Jitter:    millis(dep.Config.GetInt("whale.feed.backoff.jitter_ms")),
		},
		SubscribeAttempts: int(dep.Config.GetInt("whale.feed.subscribe_attempts")),
	})

	ctx := dep.Context
	if ctx == nil {
		ctx = context.Background()
	}
	consumer.Start(ctx)

	uc := usecase.New(usecase.Dependency{
		Windows:      windows,
		Stats:        stats,
		PollInterval: millis(dep.Config.GetInt("whale.query.poll_interval_ms")),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	dep.Router.Handle(http.MethodGet, "/metrics", promhttp.Handler())
	dep.Router.AddCheck("whale.feed", stats.Ready)

	slog.InfoContext(ctx, "whale module started")

	return consumer.Stop, nil
}

func millis(v int64) time.Duration {
	return time.Duration(v) * time.Millisecond
}
