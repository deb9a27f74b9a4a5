package source

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugswater/dbseeder/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func collect(t *testing.T, it Iterator) []RawRecord {
	t.Helper()
	defer it.Close()

	var records []RawRecord
	for {
		rec, err := it.Next()
		if err == io.EOF {
			return records
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
}

func TestLookupUnknownTag(t *testing.T) {
	_, err := Lookup("nwis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nwis")
}

func TestOpenMissingProgramFolder(t *testing.T) {
	f, err := Lookup("dogm")
	require.NoError(t, err)

	_, err = f.Open(t.TempDir())

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "dogm", formatErr.Source)
}

func TestSingleFileProgram(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "DOGM", "Stations.csv"),
		"OrgId,StationId,Lat_Y,Lon_X\nDOGM,M-7,39.5,-110.5\n")
	writeFile(t, filepath.Join(root, "DOGM", "Results.csv"),
		"StationId,Param,SampleId,SampleDate\nM-7,Calcium,S-1,2014-03-01\n")

	f, err := Lookup("dogm")
	require.NoError(t, err)
	ext, err := f.Open(root)
	require.NoError(t, err)
	assert.Equal(t, "dogm", ext.Tag())

	stations, err := ext.Stations()
	require.NoError(t, err)
	recs := collect(t, stations)
	require.Len(t, recs, 1)
	assert.Equal(t, "M-7", recs[0]["StationId"])

	results, err := ext.Results()
	require.NoError(t, err)
	recs = collect(t, results)
	require.Len(t, recs, 1)
	assert.Equal(t, "Calcium", recs[0]["Param"])
}

func TestMissingStationsFileIsTolerated(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "DOGM", "Results.csv"),
		"StationId,Param,SampleId,SampleDate\nM-7,Calcium,S-1,2014-03-01\n")

	f, _ := Lookup("dogm")
	ext, err := f.Open(root)
	require.NoError(t, err)

	stations, err := ext.Stations()
	require.NoError(t, err)
	assert.Empty(t, collect(t, stations))
}

func TestMissingResultsFileIsFormatError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "DOGM", "Stations.csv"),
		"OrgId,StationId,Lat_Y,Lon_X\n")

	f, _ := Lookup("dogm")
	ext, err := f.Open(root)
	require.NoError(t, err)

	_, err = ext.Results()
	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestMissingRequiredColumnIsFormatError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "DOGM", "Results.csv"),
		"StationId,Analyte,SampleId,SampleDate\nM-7,Calcium,S-1,2014-03-01\n")

	f, _ := Lookup("dogm")
	ext, err := f.Open(root)
	require.NoError(t, err)

	_, err = ext.Results()
	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "Param")
}

func TestTabDelimitedProgram(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "DWR", "Results.csv"),
		"StationId\tParam\tResultValue\tSampleDate\nWL-3\tSodium\t42.1\t2014-03-01\n")

	f, err := Lookup("dwr")
	require.NoError(t, err)
	ext, err := f.Open(root)
	require.NoError(t, err)

	results, err := ext.Results()
	require.NoError(t, err)
	recs := collect(t, results)
	require.Len(t, recs, 1)
	assert.Equal(t, "42.1", recs[0]["ResultValue"])
}

func TestFolderizedProgramChainsFiles(t *testing.T) {
	root := t.TempDir()
	stationHeader := "OrganizationIdentifier,MonitoringLocationIdentifier,LatitudeMeasure,LongitudeMeasure\n"
	resultHeader := "ActivityIdentifier,MonitoringLocationIdentifier,CharacteristicName,ResultMeasureValue\n"

	writeFile(t, filepath.Join(root, "WQP", "Stations", "b.csv"),
		stationHeader+"UTAHDWQ,UTAHDWQ-2,40.1,-111.1\n")
	writeFile(t, filepath.Join(root, "WQP", "Stations", "a.csv"),
		stationHeader+"UTAHDWQ,UTAHDWQ-1,40.0,-111.0\n")
	writeFile(t, filepath.Join(root, "WQP", "Results", "r.csv"),
		resultHeader+"ACT-1,UTAHDWQ-1,Calcium,52.3\nACT-1,UTAHDWQ-1,Chloride,18.0\n")

	f, err := Lookup("wqp")
	require.NoError(t, err)
	ext, err := f.Open(root)
	require.NoError(t, err)

	stations, err := ext.Stations()
	require.NoError(t, err)
	recs := collect(t, stations)
	require.Len(t, recs, 2)
	// Files chain in sorted order.
	assert.Equal(t, "UTAHDWQ-1", recs[0]["MonitoringLocationIdentifier"])
	assert.Equal(t, "UTAHDWQ-2", recs[1]["MonitoringLocationIdentifier"])

	results, err := ext.Results()
	require.NoError(t, err)
	assert.Len(t, collect(t, results), 2)
}

func TestFolderizedProgramRequiresChildFolders(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "WQP", "Stations"), 0o755))

	f, _ := Lookup("wqp")
	_, err := f.Open(root)

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "Results")
}

func TestRaggedRowsKeepParsedColumns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "DOGM", "Results.csv"),
		"StationId,Param,SampleId,SampleDate\nM-7,Calcium\n")

	f, _ := Lookup("dogm")
	ext, err := f.Open(root)
	require.NoError(t, err)

	results, err := ext.Results()
	require.NoError(t, err)
	recs := collect(t, results)
	require.Len(t, recs, 1)
	assert.Equal(t, "Calcium", recs[0]["Param"])
	assert.Empty(t, recs[0]["SampleDate"])
}
