// Command genmock writes a small, deterministic data root with one extract
// per source program. The fixtures exercise the real format and rule tables,
// so `dbseeder validate --path <out>` and local seeds against SQLite behave
// like a real delivery.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata-root -stations 25 -results 200
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ugswater/dbseeder/internal/pipeline"
)

var baseDate = time.Date(2014, time.March, 1, 0, 0, 0, 0, time.UTC)

// params cycles through the major ions plus a couple of analytes that do not
// enter the charge balance.
var params = []string{
	"Calcium", "Magnesium", "Sodium", "Potassium",
	"Bicarbonate", "Chloride", "Sulfate", "Nitrate",
	"Arsenic", "pH",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "testdata-root", "directory to write the data root into")
	stations := flag.Int("stations", 25, "stations per source program")
	results := flag.Int("results", 200, "results per source program")
	flag.Parse()

	// Fixed seed: re-running must reproduce the same fixtures byte for byte.
	rng := rand.New(rand.NewSource(49))

	for _, tag := range pipeline.Tags() {
		b, err := pipeline.Bind(tag)
		if err != nil {
			return err
		}
		if err := writeProgram(*out, b, rng, *stations, *results); err != nil {
			return fmt.Errorf("writing %s fixtures: %w", tag, err)
		}
		log.Printf("%s: %d stations, %d results", tag, *stations, *results)
	}
	return nil
}

func writeProgram(root string, b pipeline.Binding, rng *rand.Rand, stations, results int) error {
	label := b.Rules.Label
	dir := filepath.Join(root, label)

	stationRows := buildStations(b, rng, stations)
	resultRows := buildResults(b, rng, stations, results)

	// WQP ships folders of csv files; the agency programs ship single files.
	if b.Format.Tag == "wqp" {
		if err := writeCSV(filepath.Join(dir, "Stations", label+"Stations.csv"), b.Format.Comma(), stationRows); err != nil {
			return err
		}
		return writeCSV(filepath.Join(dir, "Results", label+"Results.csv"), b.Format.Comma(), resultRows)
	}
	if err := writeCSV(filepath.Join(dir, "Stations.csv"), b.Format.Comma(), stationRows); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, "Results.csv"), b.Format.Comma(), resultRows)
}

// buildStations emits rows in the program's own column vocabulary, derived
// from the same rename table the mapper uses.
func buildStations(b pipeline.Binding, rng *rand.Rand, n int) [][]string {
	header := sourceColumns(b.Rules.StationRenames)
	rows := [][]string{header}

	for i := 0; i < n; i++ {
		values := map[string]string{
			"OrgId":       orgID(b.Format.Tag),
			"OrgName":     b.Rules.Label + " Monitoring Program",
			"StationId":   stationID(b.Format.Tag, i),
			"StationName": fmt.Sprintf("%s monitoring site %d", b.Rules.Label, i+1),
			"StationType": "Well",
			"Lon_X":       fmt.Sprintf("%.6f", -114+rng.Float64()*5),
			"Lat_Y":       fmt.Sprintf("%.6f", 37+rng.Float64()*5),
			"StateCode":   "49",
			"CountyCode":  fmt.Sprintf("%d", 1+rng.Intn(57)),
			"HUC8":        "16020204",
			"Depth":       fmt.Sprintf("%.1f", 50+rng.Float64()*400),
			"DepthUnit":   "ft",
		}
		rows = append(rows, renderRow(header, b.Rules.StationRenames, values))
	}
	return rows
}

func buildResults(b pipeline.Binding, rng *rand.Rand, stations, n int) [][]string {
	header := sourceColumns(b.Rules.ResultRenames)
	rows := [][]string{header}

	for i := 0; i < n; i++ {
		station := stationID(b.Format.Tag, i%stations)
		sampleDate := baseDate.AddDate(0, 0, i/len(params))
		values := map[string]string{
			"StationId":   station,
			"OrgId":       orgID(b.Format.Tag),
			"OrgName":     b.Rules.Label + " Monitoring Program",
			"Param":       params[i%len(params)],
			"ResultValue": fmt.Sprintf("%.2f", 1+rng.Float64()*250),
			"Unit":        "mg/L",
			"SampleDate":  sampleDate.Format("2006-01-02"),
			"SampleTime":  "10:30:00",
			"SampleId":    fmt.Sprintf("%s-%04d", station, i/len(params)),
			"SampMedia":   "Water",
			"SampFrac":    "Dissolved",
		}
		// A few non-detects, shaped the way laboratories report them.
		if i%17 == 0 {
			values["ResultValue"] = ""
			values["DetectCond"] = "Not Detected"
			values["MDL"] = "0.05"
			values["MDLUnit"] = "mg/L"
		}
		rows = append(rows, renderRow(header, b.Rules.ResultRenames, values))
	}
	return rows
}

// sourceColumns lists a rename table's source columns in stable order.
func sourceColumns(renames map[string]string) []string {
	cols := make([]string, 0, len(renames))
	for src := range renames {
		cols = append(cols, src)
	}
	sort.Strings(cols)
	return cols
}

// renderRow positions destination-keyed values under the program's own
// column names.
func renderRow(header []string, renames map[string]string, values map[string]string) []string {
	row := make([]string, len(header))
	for i, src := range header {
		row[i] = values[renames[src]]
	}
	return row
}

func orgID(tag string) string {
	if tag == "wqp" {
		return "UTAHDWQ"
	}
	return "UDWR-" + tag
}

func stationID(tag string, i int) string {
	if tag == "wqp" {
		// Portal ids carry the _WQX suffix; loading strips it.
		return fmt.Sprintf("UTAHDWQ_WQX-%03d", i+1)
	}
	return fmt.Sprintf("%s-site-%03d", tag, i+1)
}

func writeCSV(path string, comma rune, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = comma
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
