package scoring

import (
	"context"

	"github.com/songzhibin97/rugscan/internal/models"
)

// Classifier resolves whether a token is meme-type or utility-type. It
// must always return a classification; transport or parse failures inside
// an implementation degrade to a lower-confidence fallback, never an error.
type Classifier interface {
	Resolve(ctx context.Context, meta *models.TokenMetadata) *models.Classification
}

// CatalogResolver checks a reference catalog for verified high-market-cap
// listings. Implementations return a zero OfficialListing on lookup
// failure; scoring treats that the same as "not listed".
type CatalogResolver interface {
	Resolve(ctx context.Context, symbol, address string) models.OfficialListing
}
