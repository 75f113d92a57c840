package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/xrpwhale/internal/whale/usecase"
)

type uc interface {
	GetViews(ctx context.Context, minAmount float64) (usecase.ViewsResult, error)
	Stats(ctx context.Context) (usecase.StatsResult, error)
	Settings(ctx context.Context) (usecase.SettingsResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/views", end.Views) // ?min_amount=
	r.GET("/stats", end.Stats)
	r.GET("/settings", end.Settings)

	r.Handle(http.MethodGet, "/dashboard", http.HandlerFunc(end.Dashboard))
}
