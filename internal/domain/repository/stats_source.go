package repository

import (
	"context"

	"covidash/internal/domain/models"
)

// StatsSource is the read-only view of the remote statistics API. Responses
// are expected to be memoized by the implementation; callers treat every
// method as cheap once warm.
type StatsSource interface {
	Summary(ctx context.Context) ([]models.CountrySummary, error)
	GlobalHistorical(ctx context.Context, lastdays string) ([]models.CountryHistorical, error)
	CountryHistorical(ctx context.Context, country, lastdays string) (*models.CountryHistorical, error)
}
