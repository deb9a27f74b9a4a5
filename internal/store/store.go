// Package store persists canonical records into the two destination tables.
// The table shapes are a fixed external contract; this package owns only the
// SQL that satisfies it. Two drivers are provided: Postgres (with PostGIS,
// the production destination) and an embedded SQLite database for local runs
// and tests.
package store

import (
	"context"
	"time"

	"github.com/ugswater/dbseeder/internal/domain"
)

// Store is the destination database held by one seeding run. Batch methods
// are atomic: the whole slice commits or none of it does, which is what makes
// cancel-and-rerun safe at batch granularity.
type Store interface {
	// Ping verifies the destination is reachable. The readiness probe
	// calls this.
	Ping(ctx context.Context) error

	// EnsureSchema creates the destination tables when they do not exist.
	EnsureSchema(ctx context.Context) error

	// LoadStations returns every station already in the destination, keyed
	// by (OrgId, StationId). The resolver pre-warms its index from this so
	// re-runs merge instead of duplicating.
	LoadStations(ctx context.Context) (map[domain.StationKey]domain.Station, error)

	// LoadResultKeys returns the dedup keys of every committed result.
	LoadResultKeys(ctx context.Context) (map[string]struct{}, error)

	// MaxSampleDate returns the newest SampleDate in Results, or nil when
	// the table is empty. Incremental updates fetch from this point forward.
	MaxSampleDate(ctx context.Context) (*time.Time, error)

	// InsertStations inserts new stations in one transaction. A station
	// whose key already exists is left untouched.
	InsertStations(ctx context.Context, stations []domain.Station) error

	// UpdateStations rewrites merged stations in one transaction.
	UpdateStations(ctx context.Context, stations []domain.Station) error

	// InsertResults appends result rows in one transaction, skipping rows
	// whose dedup key is already present.
	InsertResults(ctx context.Context, results []domain.Result) error

	Close() error
}
