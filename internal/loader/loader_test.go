package loader

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugswater/dbseeder/internal/config"
	"github.com/ugswater/dbseeder/internal/domain"
)

type fakeStore struct {
	keys map[string]struct{}
}

func (f *fakeStore) Ping(context.Context) error         { return nil }
func (f *fakeStore) EnsureSchema(context.Context) error { return nil }
func (f *fakeStore) LoadStations(context.Context) (map[domain.StationKey]domain.Station, error) {
	return nil, nil
}
func (f *fakeStore) LoadResultKeys(context.Context) (map[string]struct{}, error) {
	if f.keys == nil {
		return map[string]struct{}{}, nil
	}
	return f.keys, nil
}
func (f *fakeStore) MaxSampleDate(context.Context) (*time.Time, error)      { return nil, nil }
func (f *fakeStore) InsertStations(context.Context, []domain.Station) error { return nil }
func (f *fakeStore) UpdateStations(context.Context, []domain.Station) error { return nil }
func (f *fakeStore) InsertResults(context.Context, []domain.Result) error   { return nil }
func (f *fakeStore) Close() error                                           { return nil }

type knownStations map[string]bool

func (k knownStations) HasStation(id string) bool { return k[id] }

func newLoader(t *testing.T, st *fakeStore, known knownStations, policy config.OrphanPolicy) *Loader {
	t.Helper()
	l, err := New(context.Background(), st, known, policy)
	require.NoError(t, err)
	return l
}

func result(stationID, param string, value float64) domain.Result {
	r := domain.Result{
		StationID:   stationID,
		Param:       param,
		SampleDate:  domain.Date(time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)),
		SampleTime:  "10:30:00",
		SampleID:    stationID + "-S1",
		Unit:        "mg/L",
		ResultValue: domain.Float(value),
	}
	r.DedupKey = domain.ResultDedupKey(&r)
	return r
}

func TestAddStagesValidResult(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{"4904410": true}, config.OrphanLenient)

	outcome, err := l.Add(result("4904410", "Calcium", 52.3))

	require.NoError(t, err)
	assert.Equal(t, Staged, outcome)
	assert.Equal(t, 1, l.Len())
}

func TestAddRejectsMissingStationID(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{}, config.OrphanLenient)

	outcome, err := l.Add(result("", "Calcium", 52.3))

	assert.Equal(t, Rejected, outcome)
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "StationId", valErr.Field)
	assert.Zero(t, l.Len())
}

func TestAddRejectsValuelessResultWithoutNonDetect(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{"4904410": true}, config.OrphanLenient)

	r := result("4904410", "Arsenic", 0)
	r.ResultValue = nil

	outcome, err := l.Add(r)

	assert.Equal(t, Rejected, outcome)
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "ResultValue", valErr.Field)
}

func TestAddAcceptsRecognizedNonDetect(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{"4904410": true}, config.OrphanLenient)

	r := result("4904410", "Arsenic", 0)
	r.ResultValue = nil
	r.DetectCond = "Not Detected"
	r.DedupKey = domain.ResultDedupKey(&r)

	outcome, err := l.Add(r)

	require.NoError(t, err)
	assert.Equal(t, Staged, outcome)
}

func TestAddOrphanLenientStagesAndCounts(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{}, config.OrphanLenient)

	outcome, err := l.Add(result("UNKNOWN-1", "Calcium", 52.3))

	require.NoError(t, err)
	assert.Equal(t, StagedOrphan, outcome)
	assert.Equal(t, 1, l.Len())
}

func TestAddOrphanStrictRejects(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{}, config.OrphanStrict)

	outcome, err := l.Add(result("UNKNOWN-1", "Calcium", 52.3))

	assert.Equal(t, Rejected, outcome)
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Zero(t, l.Len())
}

func TestAddSkipsDuplicateWithinRun(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{"4904410": true}, config.OrphanLenient)

	first, err := l.Add(result("4904410", "Calcium", 52.3))
	require.NoError(t, err)
	assert.Equal(t, Staged, first)

	second, err := l.Add(result("4904410", "Calcium", 52.3))
	require.NoError(t, err)
	assert.Equal(t, SkippedDuplicate, second)
	assert.Equal(t, 1, l.Len())
}

func TestAddSkipsDuplicateAcrossRuns(t *testing.T) {
	committed := result("4904410", "Calcium", 52.3)
	st := &fakeStore{keys: map[string]struct{}{committed.DedupKey: {}}}
	l := newLoader(t, st, knownStations{"4904410": true}, config.OrphanLenient)

	outcome, err := l.Add(result("4904410", "Calcium", 52.3))

	require.NoError(t, err)
	assert.Equal(t, SkippedDuplicate, outcome)
	assert.Zero(t, l.Len())
}

func TestDrainResetsStagingOnly(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{"4904410": true}, config.OrphanLenient)

	_, err := l.Add(result("4904410", "Calcium", 52.3))
	require.NoError(t, err)

	staged := l.Drain()
	assert.Len(t, staged, 1)
	assert.Zero(t, l.Len())
	assert.Equal(t, 1, l.SampleSets())
}

func TestFinishDerivesChargeBalanceRows(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{"4904410": true}, config.OrphanLenient)

	_, err := l.Add(result("4904410", "Calcium", 100))
	require.NoError(t, err)
	_, err = l.Add(result("4904410", "Chloride", 150))
	require.NoError(t, err)

	l.Drain()
	derived := l.Finish()

	require.Len(t, derived, 3)
	assert.Equal(t, "Cations, total", derived[0].Param)
	assert.Equal(t, "Anions, total", derived[1].Param)
	assert.Equal(t, "Charge balance", derived[2].Param)
	for _, r := range derived {
		assert.NotEmpty(t, r.DedupKey)
	}
}

func TestFinishDedupsDerivedRowsAcrossRuns(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{"4904410": true}, config.OrphanLenient)

	_, err := l.Add(result("4904410", "Calcium", 100))
	require.NoError(t, err)
	_, err = l.Add(result("4904410", "Chloride", 150))
	require.NoError(t, err)
	first := l.Finish()
	require.Len(t, first, 3)

	keys := make(map[string]struct{}, len(first))
	for _, r := range first {
		keys[r.DedupKey] = struct{}{}
	}

	// A later run over the same extract: source rows dedup away, and the
	// derived rows must too.
	rerun := newLoader(t, &fakeStore{keys: keys}, knownStations{"4904410": true}, config.OrphanLenient)
	_, err = rerun.Add(result("4904410", "Calcium", 100))
	require.NoError(t, err)
	_, err = rerun.Add(result("4904410", "Chloride", 150))
	require.NoError(t, err)

	assert.Empty(t, rerun.Finish())
}

func TestSampleSetsCountsDistinctSampleIDs(t *testing.T) {
	l := newLoader(t, &fakeStore{}, knownStations{"A": true, "B": true}, config.OrphanLenient)

	_, err := l.Add(result("A", "Calcium", 10))
	require.NoError(t, err)
	_, err = l.Add(result("A", "Chloride", 20))
	require.NoError(t, err)
	_, err = l.Add(result("B", "Calcium", 30))
	require.NoError(t, err)

	assert.Equal(t, 2, l.SampleSets())
}
