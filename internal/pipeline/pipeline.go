// Package pipeline orchestrates seeding jobs. One job covers one source
// program and moves through a fixed sequence of states; jobs run strictly
// one after another, and a failed job never stops the jobs queued behind it.
package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ugswater/dbseeder/internal/config"
	"github.com/ugswater/dbseeder/internal/domain"
	"github.com/ugswater/dbseeder/internal/loader"
	"github.com/ugswater/dbseeder/internal/observability"
	"github.com/ugswater/dbseeder/internal/resolver"
	"github.com/ugswater/dbseeder/internal/source"
	"github.com/ugswater/dbseeder/internal/store"
)

// State names the phase a job is in. A job only ever moves forward.
type State string

const (
	StatePending   State = "pending"
	StateReading   State = "reading"
	StateMapping   State = "mapping"
	StateResolving State = "resolving"
	StateLoading   State = "loading"
	StateCommitted State = "committed"
	StateFailed    State = "failed"
)

// progressInterval is how many sample sets pass between progress log lines.
const progressInterval = 5000

// Summary is the final accounting of one source job. Counts cover committed
// work only; on failure, Remaining says how many staged rows never committed,
// counting both the rolled-back batch and the batches behind it.
type Summary struct {
	RunID  string
	Source string
	State  State

	StationsRead      int
	ResultsRead       int
	StationsInserted  int
	StationsMerged    int
	ResultsInserted   int
	DuplicatesSkipped int
	Orphans           int

	MappingErrors    int
	ValidationErrors int
	GeometryErrors   int

	BatchesCommitted int
	Remaining        int
	Duration         time.Duration
	Err              error
}

// Orchestrator runs seeding jobs against one destination store.
type Orchestrator struct {
	store     store.Store
	log       *slog.Logger
	metrics   *observability.Metrics
	batchSize int
	policy    config.OrphanPolicy

	running atomic.Bool
}

func New(st store.Store, log *slog.Logger, m *observability.Metrics, batchSize int, policy config.OrphanPolicy) *Orchestrator {
	return &Orchestrator{
		store:     st,
		log:       log,
		metrics:   m,
		batchSize: batchSize,
		policy:    policy,
	}
}

// Running reports whether a seed is in flight. The HTTP readiness probe
// reads this.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

// Seed runs one job per tag, in the given order. Every job runs even when an
// earlier one fails; the returned error joins the failures so the caller can
// exit non-zero.
func (o *Orchestrator) Seed(ctx context.Context, root string, tags []string) ([]Summary, error) {
	bindings, err := BindAll(tags)
	if err != nil {
		return nil, err
	}

	o.running.Store(true)
	defer o.running.Store(false)

	var errs []error
	summaries := make([]Summary, 0, len(bindings))
	for _, b := range bindings {
		sum := o.runJob(ctx, b, func() (source.Extract, error) { return b.Format.Open(root) })
		summaries = append(summaries, sum)
		if sum.Err != nil {
			errs = append(errs, sum.Err)
		}
	}
	return summaries, errors.Join(errs...)
}

// Run executes a single job over an already-constructed extract. Seed uses it
// for file extracts; the incremental WQP update feeds it an HTTP-backed one.
func (o *Orchestrator) Run(ctx context.Context, b Binding, ext source.Extract) Summary {
	o.running.Store(true)
	defer o.running.Store(false)
	return o.runJob(ctx, b, func() (source.Extract, error) { return ext, nil })
}

func (o *Orchestrator) runJob(ctx context.Context, b Binding, open func() (source.Extract, error)) Summary {
	start := domain.Now()
	sum := Summary{RunID: uuid.NewString(), Source: b.Format.Tag, State: StatePending}
	log := o.log.With("run_id", sum.RunID, "source", sum.Source)

	o.metrics.JobRunning.Set(1)
	defer o.metrics.JobRunning.Set(0)

	fail := func(err error) Summary {
		sum.State = StateFailed
		sum.Err = err
		sum.Duration = domain.Now().Sub(start)
		o.metrics.JobDuration.WithLabelValues(sum.Source, string(StateFailed)).Observe(sum.Duration.Seconds())
		log.Error("job failed",
			"error", err,
			"results_inserted", sum.ResultsInserted,
			"batches_committed", sum.BatchesCommitted,
			"remaining", sum.Remaining)
		return sum
	}

	log.Info("job started")

	sum.State = StateReading
	ext, err := open()
	if err != nil {
		return fail(err)
	}

	rawStations, err := readAll(ext.Stations)
	if err != nil {
		return fail(err)
	}
	sum.StationsRead = len(rawStations)
	o.metrics.RecordsRead.WithLabelValues(sum.Source, "station").Add(float64(len(rawStations)))

	sum.State = StateMapping
	stations := make([]domain.Station, 0, len(rawStations))
	for _, rec := range rawStations {
		s, err := b.Rules.MapStation(rec)
		if err != nil {
			sum.MappingErrors++
			o.metrics.RecordErrors.WithLabelValues(sum.Source, "mapping").Inc()
			log.Debug("station dropped", "error", err)
			continue
		}
		stations = append(stations, s)
	}

	sum.State = StateResolving
	res, err := resolver.New(ctx, o.store)
	if err != nil {
		return fail(err)
	}
	for _, s := range stations {
		err := res.Resolve(s)
		var geomErr *domain.GeometryError
		var valErr *domain.ValidationError
		switch {
		case err == nil:
		case errors.As(err, &geomErr):
			// Station still staged, with null geometry.
			sum.GeometryErrors++
			o.metrics.RecordErrors.WithLabelValues(sum.Source, "geometry").Inc()
			log.Debug("station geometry rejected", "error", err)
		case errors.As(err, &valErr):
			sum.ValidationErrors++
			o.metrics.RecordErrors.WithLabelValues(sum.Source, "validation").Inc()
			log.Debug("station dropped", "error", err)
		default:
			return fail(err)
		}
	}

	sum.State = StateLoading
	inserts, updates := res.Drain()
	if err := o.flushStations(ctx, inserts, updates, &sum); err != nil {
		return fail(err)
	}
	o.metrics.StationsInserted.WithLabelValues(sum.Source).Add(float64(sum.StationsInserted))
	o.metrics.StationsMerged.WithLabelValues(sum.Source).Add(float64(sum.StationsMerged))

	ld, err := loader.New(ctx, o.store, res, o.policy)
	if err != nil {
		return fail(err)
	}

	results, err := ext.Results()
	if err != nil {
		return fail(err)
	}
	defer results.Close()

	lastProgress := 0
	for {
		rec, err := results.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(err)
		}
		sum.ResultsRead++
		o.metrics.RecordsRead.WithLabelValues(sum.Source, "result").Inc()

		r, err := b.Rules.MapResult(rec)
		if err != nil {
			sum.MappingErrors++
			o.metrics.RecordErrors.WithLabelValues(sum.Source, "mapping").Inc()
			log.Debug("result dropped", "error", err)
			continue
		}

		outcome, err := ld.Add(r)
		switch outcome {
		case loader.Rejected:
			sum.ValidationErrors++
			o.metrics.RecordErrors.WithLabelValues(sum.Source, "validation").Inc()
			o.metrics.ResultsSkipped.WithLabelValues(sum.Source, "validation").Inc()
			log.Debug("result rejected", "error", err)
		case loader.SkippedDuplicate:
			sum.DuplicatesSkipped++
			o.metrics.ResultsSkipped.WithLabelValues(sum.Source, "duplicate").Inc()
		case loader.StagedOrphan:
			sum.Orphans++
			o.metrics.OrphanResults.WithLabelValues(sum.Source).Inc()
		}

		if ld.Len() >= o.batchSize {
			if err := o.flushResults(ctx, ld.Drain(), &sum); err != nil {
				return fail(err)
			}
		}

		if ld.SampleSets()-lastProgress >= progressInterval {
			lastProgress = ld.SampleSets()
			log.Info("progress",
				"results_read", sum.ResultsRead,
				"results_inserted", sum.ResultsInserted,
				"sample_sets", lastProgress)
		}
	}

	if err := o.flushResults(ctx, ld.Drain(), &sum); err != nil {
		return fail(err)
	}
	if err := o.flushResults(ctx, ld.Finish(), &sum); err != nil {
		return fail(err)
	}

	sum.State = StateCommitted
	sum.Duration = domain.Now().Sub(start)
	o.metrics.JobDuration.WithLabelValues(sum.Source, string(StateCommitted)).Observe(sum.Duration.Seconds())
	log.Info("job committed",
		"stations_read", sum.StationsRead,
		"stations_inserted", sum.StationsInserted,
		"stations_merged", sum.StationsMerged,
		"results_read", sum.ResultsRead,
		"results_inserted", sum.ResultsInserted,
		"duplicates_skipped", sum.DuplicatesSkipped,
		"orphans", sum.Orphans,
		"mapping_errors", sum.MappingErrors,
		"validation_errors", sum.ValidationErrors,
		"geometry_errors", sum.GeometryErrors,
		"duration", sum.Duration)
	return sum
}

// flushStations writes the staged station inserts and updates in bounded
// batches, each its own transaction. On failure Remaining counts every staged
// row not yet committed, not just the batch that rolled back.
func (o *Orchestrator) flushStations(ctx context.Context, inserts, updates []domain.Station, sum *Summary) error {
	remaining := len(inserts) + len(updates)
	for _, batch := range chunk(inserts, o.batchSize) {
		if err := ctx.Err(); err != nil {
			sum.Remaining = remaining
			return err
		}
		if err := o.timed(func() error { return o.store.InsertStations(ctx, batch) }, len(batch)); err != nil {
			sum.Remaining = remaining
			return err
		}
		remaining -= len(batch)
		sum.StationsInserted += len(batch)
		sum.BatchesCommitted++
	}
	for _, batch := range chunk(updates, o.batchSize) {
		if err := ctx.Err(); err != nil {
			sum.Remaining = remaining
			return err
		}
		if err := o.timed(func() error { return o.store.UpdateStations(ctx, batch) }, len(batch)); err != nil {
			sum.Remaining = remaining
			return err
		}
		remaining -= len(batch)
		sum.StationsMerged += len(batch)
		sum.BatchesCommitted++
	}
	return nil
}

// flushResults commits staged results in bounded batches, with the same
// uncommitted-row accounting as flushStations.
func (o *Orchestrator) flushResults(ctx context.Context, staged []domain.Result, sum *Summary) error {
	remaining := len(staged)
	for _, batch := range chunk(staged, o.batchSize) {
		if err := ctx.Err(); err != nil {
			sum.Remaining = remaining
			return err
		}
		if err := o.timed(func() error { return o.store.InsertResults(ctx, batch) }, len(batch)); err != nil {
			sum.Remaining = remaining
			return err
		}
		remaining -= len(batch)
		sum.ResultsInserted += len(batch)
		sum.BatchesCommitted++
		o.metrics.ResultsInserted.WithLabelValues(sum.Source).Add(float64(len(batch)))
	}
	return nil
}

func (o *Orchestrator) timed(commit func() error, size int) error {
	start := domain.Now()
	err := commit()
	if err == nil {
		o.metrics.BatchSize.Observe(float64(size))
		o.metrics.BatchDuration.Observe(domain.Now().Sub(start).Seconds())
	}
	return err
}

func readAll(open func() (source.Iterator, error)) ([]source.RawRecord, error) {
	it, err := open()
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var records []source.RawRecord
	for {
		rec, err := it.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}
