// Package loader validates result rows, drops duplicates, and stages the
// survivors for batched insertion. Results are append-only; the dedup key
// set, pre-warmed from the store, is what keeps re-runs from growing the
// Results table.
package loader

import (
	"context"

	"github.com/ugswater/dbseeder/internal/config"
	"github.com/ugswater/dbseeder/internal/domain"
	"github.com/ugswater/dbseeder/internal/store"
)

// Outcome classifies what Add did with a record.
type Outcome int

const (
	// Staged means the record passed validation and awaits the next flush.
	Staged Outcome = iota
	// StagedOrphan means the record was staged under the lenient policy
	// despite referencing no known station.
	StagedOrphan
	// SkippedDuplicate means an identical result is already committed or
	// staged, so the record was dropped.
	SkippedDuplicate
	// Rejected means validation failed; Add also returns the error.
	Rejected
)

// StationIndex answers whether a station id is known to this run. The
// resolver implements it.
type StationIndex interface {
	HasStation(stationID string) bool
}

// Loader stages validated results and groups them by sample id so that
// charge-balance rows can be derived once a source is fully read.
type Loader struct {
	policy   config.OrphanPolicy
	stations StationIndex

	seen    map[string]struct{}
	staged  []domain.Result
	samples map[string][]domain.Result
	order   []string
}

// New pre-warms the dedup key set from every committed result.
func New(ctx context.Context, st store.Store, stations StationIndex, policy config.OrphanPolicy) (*Loader, error) {
	seen, err := st.LoadResultKeys(ctx)
	if err != nil {
		return nil, err
	}
	return &Loader{
		policy:   policy,
		stations: stations,
		seen:     seen,
		samples:  make(map[string][]domain.Result),
	}, nil
}

// Add validates r and stages it. A ValidationError is returned for a record
// with no station id, a value that is neither numeric nor a recognized
// non-detect, or, under the strict policy, a station id no station resolves
// to.
func (l *Loader) Add(r domain.Result) (Outcome, error) {
	if r.StationID == "" {
		return Rejected, &domain.ValidationError{Field: "StationId", Reason: "station id is required"}
	}
	if r.ResultValue == nil && !domain.IsNonDetect(r.DetectCond, r.QualCode) {
		return Rejected, &domain.ValidationError{
			Field:  "ResultValue",
			Reason: "no numeric value and no recognized non-detect condition",
		}
	}

	orphan := !l.stations.HasStation(r.StationID)
	if orphan && l.policy == config.OrphanStrict {
		return Rejected, &domain.ValidationError{
			Field:  "StationId",
			Reason: "no station with id " + r.StationID,
		}
	}

	if r.DedupKey == "" {
		r.DedupKey = domain.ResultDedupKey(&r)
	}
	if _, dup := l.seen[r.DedupKey]; dup {
		return SkippedDuplicate, nil
	}
	l.seen[r.DedupKey] = struct{}{}

	l.stage(r)
	if orphan {
		return StagedOrphan, nil
	}
	return Staged, nil
}

func (l *Loader) stage(r domain.Result) {
	l.staged = append(l.staged, r)
	if r.SampleID != "" {
		if _, ok := l.samples[r.SampleID]; !ok {
			l.order = append(l.order, r.SampleID)
		}
		l.samples[r.SampleID] = append(l.samples[r.SampleID], r)
	}
}

// Len reports how many records await the next flush.
func (l *Loader) Len() int {
	return len(l.staged)
}

// SampleSets reports how many distinct sample ids have been staged so far.
func (l *Loader) SampleSets() int {
	return len(l.order)
}

// Drain returns the staged records and resets the staging area. Sample-set
// groupings survive so Finish still sees whole samples.
func (l *Loader) Drain() []domain.Result {
	staged := l.staged
	l.staged = nil
	return staged
}

// Finish derives the charge-balance rows for every sample set read during
// this source, in first-seen order, and returns them for a final flush.
// Derived rows pass through the same dedup set as source rows.
func (l *Loader) Finish() []domain.Result {
	var derived []domain.Result
	for _, id := range l.order {
		for _, r := range domain.ChargeBalance(l.samples[id]) {
			r.DedupKey = domain.ResultDedupKey(&r)
			if _, dup := l.seen[r.DedupKey]; dup {
				continue
			}
			l.seen[r.DedupKey] = struct{}{}
			derived = append(derived, r)
		}
	}
	l.samples = make(map[string][]domain.Result)
	l.order = nil
	return derived
}
