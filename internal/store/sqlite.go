package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ugswater/dbseeder/internal/domain"
)

// SQLite is the embedded destination for local runs and tests. Dates are
// stored as ISO text and geometry as plain WKT text, since there is no
// spatial extension; everything else matches the Postgres layout.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// The driver serializes access itself, but a single connection keeps
	// transactions and reads from interleaving.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteDDL); err != nil {
		return &domain.LoadError{Op: "create schema", Err: err}
	}
	return nil
}

func (s *SQLite) LoadStations(ctx context.Context) (map[domain.StationKey]domain.Station, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelectStations)
	if err != nil {
		return nil, &domain.LoadError{Op: "load stations", Err: err}
	}
	defer rows.Close()

	stations := make(map[domain.StationKey]domain.Station)
	for rows.Next() {
		st, err := scanStation(rows, true)
		if err != nil {
			return nil, &domain.LoadError{Op: "scan station", Err: err}
		}
		stations[st.Key()] = st
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.LoadError{Op: "load stations", Err: err}
	}
	return stations, nil
}

func (s *SQLite) LoadResultKeys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT "DedupKey" FROM "Results" WHERE "DedupKey" IS NOT NULL`)
	if err != nil {
		return nil, &domain.LoadError{Op: "load result keys", Err: err}
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, &domain.LoadError{Op: "scan result key", Err: err}
		}
		keys[k] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.LoadError{Op: "load result keys", Err: err}
	}
	return keys, nil
}

func (s *SQLite) MaxSampleDate(ctx context.Context) (*time.Time, error) {
	// ISO text dates compare correctly as strings.
	var max sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT max("SampleDate") FROM "Results"`).Scan(&max)
	if err != nil {
		return nil, &domain.LoadError{Op: "max sample date", Err: err}
	}
	return parseTextDate(max), nil
}

func (s *SQLite) InsertStations(ctx context.Context, stations []domain.Station) error {
	return s.withTx(ctx, "insert stations", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, sqliteInsertStation)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i := range stations {
			st := &stations[i]
			args := append(stationArgs(st), nullStr(st.Shape))
			if _, err := stmt.ExecContext(ctx, textDateArgs(args)...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) UpdateStations(ctx context.Context, stations []domain.Station) error {
	return s.withTx(ctx, "update stations", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, sqliteUpdateStation)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i := range stations {
			st := &stations[i]
			args := append(stationArgs(st), nullStr(st.Shape), st.OrgID, st.StationID)
			if _, err := stmt.ExecContext(ctx, textDateArgs(args)...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) InsertResults(ctx context.Context, results []domain.Result) error {
	return s.withTx(ctx, "insert results", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, sqliteInsertResult)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i := range results {
			if _, err := stmt.ExecContext(ctx, textDateArgs(resultArgs(&results[i]))...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) withTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.LoadError{Op: op, Err: err}
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return &domain.LoadError{Op: op, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &domain.LoadError{Op: op, Err: err}
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// textDateArgs rewrites *time.Time bind values into ISO date strings, the
// storage form this driver uses for date columns.
func textDateArgs(args []any) []any {
	for i, a := range args {
		if t, ok := a.(*time.Time); ok {
			if t == nil {
				args[i] = nil
			} else {
				args[i] = t.Format("2006-01-02")
			}
		}
	}
	return args
}

var (
	sqliteSelectStations = `SELECT ` + quoteJoin(StationColumns) + ` FROM "Stations"`

	sqliteInsertStation = fmt.Sprintf(
		`INSERT INTO "Stations" (%s) VALUES (%s) ON CONFLICT ("OrgId", "StationId") DO NOTHING`,
		quoteJoin(StationColumns), strings.Join(questionMarks(len(StationColumns)), ", "))

	sqliteUpdateStation = func() string {
		sets := make([]string, len(StationColumns))
		for i, c := range StationColumns {
			sets[i] = `"` + c + `" = ?`
		}
		return fmt.Sprintf(`UPDATE "Stations" SET %s WHERE "OrgId" = ? AND "StationId" = ?`,
			strings.Join(sets, ", "))
	}()

	sqliteInsertResult = fmt.Sprintf(
		`INSERT INTO "Results" (%s) VALUES (%s) ON CONFLICT ("DedupKey") DO NOTHING`,
		quoteJoin(ResultColumns), strings.Join(questionMarks(len(ResultColumns)), ", "))
)

func questionMarks(n int) []string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = "?"
	}
	return ph
}
