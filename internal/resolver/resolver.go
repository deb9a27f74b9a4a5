// Package resolver decides, for each incoming station, whether it is new to
// the destination or an additive merge onto a station already there. The
// index is scoped to one seeding run and pre-warmed from the store, which is
// what makes re-seeding the same extract a no-op.
package resolver

import (
	"context"

	"github.com/ugswater/dbseeder/internal/domain"
	"github.com/ugswater/dbseeder/internal/store"
)

type stage int

const (
	stageNone stage = iota
	stageInsert
	stageUpdate
)

type pending struct {
	stage stage
	pos   int
}

// Resolver holds the run-scoped station index and the stations staged since
// the last drain.
type Resolver struct {
	index map[domain.StationKey]domain.Station
	ids   map[string]struct{}

	inserts []domain.Station
	updates []domain.Station
	staged  map[domain.StationKey]pending
}

// New pre-warms the index from every station already committed.
func New(ctx context.Context, st store.Store) (*Resolver, error) {
	existing, err := st.LoadStations(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(existing))
	for key := range existing {
		ids[key.StationID] = struct{}{}
	}
	return &Resolver{
		index:  existing,
		ids:    ids,
		staged: make(map[domain.StationKey]pending),
	}, nil
}

// Resolve stages s as an insert or an additive merge. A GeometryError means
// the station was still staged, with null geometry; a ValidationError means
// it was rejected. Merging never overwrites a populated field with a blank
// one.
func (r *Resolver) Resolve(s domain.Station) error {
	if s.StationID == "" {
		return &domain.ValidationError{Field: "StationId", Reason: "station id is required"}
	}

	var geomErr error
	if s.Shape == "" && s.LonX != nil && s.LatY != nil {
		shape, err := domain.BuildShape(*s.LonX, *s.LatY)
		if err != nil {
			geomErr = err
		} else {
			s.Shape = shape
		}
	}

	key := s.Key()
	existing, ok := r.index[key]
	if !ok {
		r.index[key] = s
		r.ids[key.StationID] = struct{}{}
		r.inserts = append(r.inserts, s)
		r.staged[key] = pending{stage: stageInsert, pos: len(r.inserts) - 1}
		return geomErr
	}

	merged, changed := domain.MergeStation(existing, s)
	if !changed {
		return geomErr
	}
	r.index[key] = merged

	// A station seen twice in one run updates its staged copy in place
	// instead of queueing a second write.
	switch p := r.staged[key]; p.stage {
	case stageInsert:
		r.inserts[p.pos] = merged
	case stageUpdate:
		r.updates[p.pos] = merged
	default:
		r.updates = append(r.updates, merged)
		r.staged[key] = pending{stage: stageUpdate, pos: len(r.updates) - 1}
	}
	return geomErr
}

// HasStation reports whether any station with this id is known, committed or
// staged. The loader uses it for orphan checks.
func (r *Resolver) HasStation(stationID string) bool {
	_, ok := r.ids[stationID]
	return ok
}

// Drain returns the staged inserts and updates and resets the staging area.
// The index itself survives, so later batches keep merging correctly.
func (r *Resolver) Drain() (inserts, updates []domain.Station) {
	inserts, updates = r.inserts, r.updates
	r.inserts = nil
	r.updates = nil
	r.staged = make(map[domain.StationKey]pending)
	return inserts, updates
}
