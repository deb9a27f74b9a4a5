package wqp

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugswater/dbseeder/internal/domain"
	"github.com/ugswater/dbseeder/internal/source"
)

const stationCSV = "OrganizationIdentifier,MonitoringLocationIdentifier,LatitudeMeasure,LongitudeMeasure\n" +
	"UTAHDWQ_WQX,UTAHDWQ_WQX-4904410,40.7342,-111.9305\n"

const resultCSV = "ActivityIdentifier,MonitoringLocationIdentifier,CharacteristicName,ResultMeasureValue\n" +
	"UTAHDWQ_WQX-BL040214,UTAHDWQ_WQX-4904410,Calcium,52.3\n" +
	"UTAHDWQ_WQX-BL040214,UTAHDWQ_WQX-4904410,Chloride,18.0\n"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testWindow(t *testing.T, c *Client) source.Extract {
	t.Helper()
	lo := time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)
	hi := time.Date(2014, 4, 15, 0, 0, 0, 0, time.UTC)
	w, err := c.Window(context.Background(), lo, hi)
	require.NoError(t, err)
	return w
}

func drain(t *testing.T, it source.Iterator) []source.RawRecord {
	t.Helper()
	defer it.Close()

	var records []source.RawRecord
	for {
		rec, err := it.Next()
		if err == io.EOF {
			return records
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
}

func TestWindowQueryParameters(t *testing.T) {
	var got url.Values
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		got = r.URL.Query()
		io.WriteString(w, stationCSV)
	})

	it, err := testWindow(t, c).Stations()
	require.NoError(t, err)
	drain(t, it)

	assert.Equal(t, "/Station/search", path)
	assert.Equal(t, "Water", got.Get("sampleMedia"))
	assert.Equal(t, "03-01-2014", got.Get("startDateLo"))
	assert.Equal(t, "04-15-2014", got.Get("startDateHi"))
	assert.Equal(t, "-115,35.5,-108,42.5", got.Get("bBox"))
	assert.Equal(t, "csv", got.Get("mimeType"))
}

func TestWindowStreamsPortalRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Station/search":
			io.WriteString(w, stationCSV)
		case "/Result/search":
			io.WriteString(w, resultCSV)
		default:
			http.NotFound(w, r)
		}
	})
	w := testWindow(t, c)
	assert.Equal(t, "wqp", w.Tag())

	stations, err := w.Stations()
	require.NoError(t, err)
	recs := drain(t, stations)
	require.Len(t, recs, 1)
	assert.Equal(t, "UTAHDWQ_WQX-4904410", recs[0]["MonitoringLocationIdentifier"])

	results, err := w.Results()
	require.NoError(t, err)
	recs = drain(t, results)
	require.Len(t, recs, 2)
	assert.Equal(t, "Calcium", recs[0]["CharacteristicName"])
	assert.Equal(t, "18.0", recs[1]["ResultMeasureValue"])
}

func TestWindowNonOKStatusIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "window too large", http.StatusBadRequest)
	})

	_, err := testWindow(t, c).Results()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "window too large")
}

func TestWindowUnexpectedColumnsIsFormatError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "SomeColumn,OtherColumn\na,b\n")
	})

	_, err := testWindow(t, c).Stations()

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "wqp", formatErr.Source)
}

func TestWindowHonorsContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, stationCSV)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w, err := c.Window(ctx, time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)

	_, err = w.Stations()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("https://www.waterqualitydata.us/", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, "https://www.waterqualitydata.us", c.baseURL)
}
