package data

import (
	"context"
	"time"

	"github.com/songzhibin97/rugscan/internal/models"
)

// CollectRequest identifies a token to collect and carries the optional
// hints providers can use.
type CollectRequest struct {
	Symbol        string
	Address       string
	Chain         models.Chain
	TwitterHandle string
}

// SnapshotCollector assembles a point-in-time snapshot of a token from
// external sources.
type SnapshotCollector interface {
	Collect(ctx context.Context, req CollectRequest) (*models.TokenSnapshot, error)
}

// ScanStorage persists scored results and serves recent ones back so the
// same token is not re-scanned within the freshness window.
type ScanStorage interface {
	SaveScan(ctx context.Context, symbol, address string, chain models.Chain, result *models.RiskResult) error

	// LatestScan returns the most recent result no older than maxAge, or
	// nil when none qualifies.
	LatestScan(ctx context.Context, address string, chain models.Chain, maxAge time.Duration) (*models.RiskResult, error)
}
