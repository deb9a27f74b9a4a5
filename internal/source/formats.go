package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ugswater/dbseeder/internal/domain"
)

// A Format describes one upstream program's extract shape: where its files
// sit under the data root, how they are delimited, and which columns must be
// present for the file to count as that format.
type Format struct {
	// Tag is the lowercase format selector used on the command line.
	Tag string
	// Label is the program name: the folder under the data root and the
	// DataSource value stamped on every loaded row.
	Label string

	comma      rune
	folderized bool // WQP ships folders of csv files instead of single files

	stationCols []string
	resultCols  []string
}

// Formats enumerates the known source programs. Adding a program means adding
// an entry here and a rule set in the mapper package; the orchestrator never
// branches on format.
var Formats = map[string]Format{
	"wqp": {
		Tag:        "wqp",
		Label:      "WQP",
		comma:      ',',
		folderized: true,
		stationCols: []string{
			"OrganizationIdentifier",
			"MonitoringLocationIdentifier",
			"LatitudeMeasure",
			"LongitudeMeasure",
		},
		resultCols: []string{
			"ActivityIdentifier",
			"MonitoringLocationIdentifier",
			"CharacteristicName",
			"ResultMeasureValue",
		},
	},
	"sdwis": {
		Tag:         "sdwis",
		Label:       "SDWIS",
		comma:       ',',
		stationCols: []string{"OrgId", "StationId", "Lat_Y", "Lon_X"},
		resultCols:  []string{"StationId", "Param", "ResultValue", "SampleDate"},
	},
	"dogm": {
		Tag:         "dogm",
		Label:       "DOGM",
		comma:       ',',
		stationCols: []string{"OrgId", "StationId", "Lat_Y", "Lon_X"},
		resultCols:  []string{"StationId", "Param", "SampleId", "SampleDate"},
	},
	"dwr": {
		Tag:         "dwr",
		Label:       "DWR",
		comma:       '\t',
		stationCols: []string{"OrgId", "StationId", "Lat_Y", "Lon_X"},
		resultCols:  []string{"StationId", "Param", "ResultValue", "SampleDate"},
	},
	"ugs": {
		Tag:         "ugs",
		Label:       "UGS",
		comma:       ',',
		stationCols: []string{"OrgId", "StationId", "Lat_Y", "Lon_X"},
		resultCols:  []string{"StationId", "Param", "SampleDate", "Unit"},
	},
}

// Comma returns the format's field delimiter.
func (f Format) Comma() rune {
	return f.comma
}

// RequiredStationColumns returns the columns a stations stream must carry to
// count as this format.
func (f Format) RequiredStationColumns() []string {
	return f.stationCols
}

// RequiredResultColumns returns the columns a results stream must carry to
// count as this format.
func (f Format) RequiredResultColumns() []string {
	return f.resultCols
}

// Lookup returns the format for a tag.
func Lookup(tag string) (Format, error) {
	f, ok := Formats[tag]
	if !ok {
		return Format{}, fmt.Errorf("unknown source format %q", tag)
	}
	return f, nil
}

// Open binds the format to a data root and verifies the expected layout
// exists. The root is the parent folder holding one directory per program,
// e.g. <root>/WQP/Stations/*.csv for WQP or <root>/DOGM/Results.csv for the
// single-file programs.
func (f Format) Open(root string) (Extract, error) {
	dir := filepath.Join(root, f.Label)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, &domain.FormatError{Source: f.Tag, Path: dir, Reason: "program folder not found under data root"}
	}

	if f.folderized {
		for _, sub := range []string{"Stations", "Results"} {
			info, err := os.Stat(filepath.Join(dir, sub))
			if err != nil || !info.IsDir() {
				return nil, &domain.FormatError{Source: f.Tag, Path: dir, Reason: fmt.Sprintf("missing %s child folder", sub)}
			}
		}
	}

	return &extract{format: f, dir: dir}, nil
}

type extract struct {
	format Format
	dir    string
}

func (e *extract) Tag() string {
	return e.format.Tag
}

func (e *extract) Stations() (Iterator, error) {
	if e.format.folderized {
		return e.folderIterator("Stations", e.format.stationCols)
	}
	return e.fileIterator("Stations.csv", e.format.stationCols, true)
}

func (e *extract) Results() (Iterator, error) {
	if e.format.folderized {
		return e.folderIterator("Results", e.format.resultCols)
	}
	return e.fileIterator("Results.csv", e.format.resultCols, false)
}

// fileIterator opens a single delimited file. A missing Stations file is
// tolerated (some programs ship chemistry only); a missing Results file is a
// FormatError.
func (e *extract) fileIterator(name string, required []string, optional bool) (Iterator, error) {
	path := filepath.Join(e.dir, name)
	if _, err := os.Stat(path); err != nil {
		if optional && os.IsNotExist(err) {
			return emptyIterator{}, nil
		}
		return nil, &domain.FormatError{Source: e.format.Tag, Path: path, Reason: "file not found"}
	}
	return openCSV(e.format.Tag, path, e.format.comma, required)
}

// folderIterator chains every csv file in the named child folder, in a
// stable order so restarts yield the same sequence.
func (e *extract) folderIterator(name string, required []string) (Iterator, error) {
	folder := filepath.Join(e.dir, name)
	files, err := filepath.Glob(filepath.Join(folder, "*.csv"))
	if err != nil || len(files) == 0 {
		return nil, &domain.FormatError{Source: e.format.Tag, Path: folder, Reason: "no csv files found"}
	}
	sort.Strings(files)

	openers := make([]func() (Iterator, error), 0, len(files))
	for _, path := range files {
		openers = append(openers, func() (Iterator, error) {
			return openCSV(e.format.Tag, path, e.format.comma, required)
		})
	}

	return &multiIterator{open: openers}, nil
}
