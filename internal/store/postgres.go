package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugswater/dbseeder/internal/domain"
)

// Postgres is the production destination. Geometry is stored natively via
// PostGIS; inserts go through pgx batches inside a single transaction so a
// batch commits whole or not at all.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS postgis`); err != nil {
		return &domain.LoadError{Op: "create postgis extension", Err: err}
	}
	if _, err := p.pool.Exec(ctx, postgresDDL); err != nil {
		return &domain.LoadError{Op: "create schema", Err: err}
	}
	return nil
}

func (p *Postgres) LoadStations(ctx context.Context) (map[domain.StationKey]domain.Station, error) {
	rows, err := p.pool.Query(ctx, pgSelectStations)
	if err != nil {
		return nil, &domain.LoadError{Op: "load stations", Err: err}
	}
	defer rows.Close()

	stations := make(map[domain.StationKey]domain.Station)
	for rows.Next() {
		s, err := scanStation(rows, false)
		if err != nil {
			return nil, &domain.LoadError{Op: "scan station", Err: err}
		}
		stations[s.Key()] = s
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.LoadError{Op: "load stations", Err: err}
	}
	return stations, nil
}

func (p *Postgres) LoadResultKeys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := p.pool.Query(ctx, `SELECT "DedupKey" FROM "Results" WHERE "DedupKey" IS NOT NULL`)
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
		keys[strings.TrimSpace(k)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.LoadError{Op: "load result keys", Err: err}
	}
	return keys, nil
}

func (p *Postgres) MaxSampleDate(ctx context.Context) (*time.Time, error) {
	var max *time.Time
	err := p.pool.QueryRow(ctx, `SELECT max("SampleDate") FROM "Results"`).Scan(&max)
	if err != nil {
		return nil, &domain.LoadError{Op: "max sample date", Err: err}
	}
	return max, nil
}

func (p *Postgres) InsertStations(ctx context.Context, stations []domain.Station) error {
	return p.sendBatch(ctx, "insert stations", func(b *pgx.Batch) {
		for i := range stations {
			s := &stations[i]
			args := append(stationArgs(s), nullStr(s.Shape))
			b.Queue(pgInsertStation, args...)
		}
	})
}

func (p *Postgres) UpdateStations(ctx context.Context, stations []domain.Station) error {
	return p.sendBatch(ctx, "update stations", func(b *pgx.Batch) {
		for i := range stations {
			s := &stations[i]
			args := append(stationArgs(s), nullStr(s.Shape), s.OrgID, s.StationID)
			b.Queue(pgUpdateStation, args...)
		}
	})
}

func (p *Postgres) InsertResults(ctx context.Context, results []domain.Result) error {
	return p.sendBatch(ctx, "insert results", func(b *pgx.Batch) {
		for i := range results {
			b.Queue(pgInsertResult, resultArgs(&results[i])...)
		}
	})
}

// sendBatch queues everything fill adds and executes the batch inside one
// transaction.
func (p *Postgres) sendBatch(ctx context.Context, op string, fill func(*pgx.Batch)) error {
	batch := &pgx.Batch{}
	fill(batch)
	if batch.Len() == 0 {
		return nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return &domain.LoadError{Op: op, Err: err}
	}
	defer tx.Rollback(ctx)

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return &domain.LoadError{Op: op, Err: err}
		}
	}
	if err := br.Close(); err != nil {
		return &domain.LoadError{Op: op, Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return &domain.LoadError{Op: op, Err: err}
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

var (
	pgSelectStations = func() string {
		cols := make([]string, 0, len(StationColumns))
		for _, c := range StationColumns[:len(StationColumns)-1] {
			cols = append(cols, `"`+c+`"`)
		}
		cols = append(cols, `ST_AsText("Shape")`)
		return `SELECT ` + strings.Join(cols, ", ") + ` FROM "Stations"`
	}()

	pgInsertStation = func() string {
		n := len(StationColumns)
		ph := placeholders(n)
		ph[n-1] = fmt.Sprintf("ST_GeomFromText($%d, %d)", n, domain.SRID)
		return fmt.Sprintf(`INSERT INTO "Stations" (%s) VALUES (%s) ON CONFLICT ("OrgId", "StationId") DO NOTHING`,
			quoteJoin(StationColumns), strings.Join(ph, ", "))
	}()

	pgUpdateStation = func() string {
		n := len(StationColumns)
		sets := make([]string, 0, n)
		for i, c := range StationColumns {
			if c == "Shape" {
				sets = append(sets, fmt.Sprintf(`"Shape" = ST_GeomFromText($%d, %d)`, i+1, domain.SRID))
				continue
			}
			sets = append(sets, fmt.Sprintf(`"%s" = $%d`, c, i+1))
		}
		return fmt.Sprintf(`UPDATE "Stations" SET %s WHERE "OrgId" = $%d AND "StationId" = $%d`,
			strings.Join(sets, ", "), n+1, n+2)
	}()

	pgInsertResult = fmt.Sprintf(
		`INSERT INTO "Results" (%s) VALUES (%s) ON CONFLICT ("DedupKey") DO NOTHING`,
		quoteJoin(ResultColumns), strings.Join(placeholders(len(ResultColumns)), ", "))
)

func quoteJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = `"` + c + `"`
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) []string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return ph
}
