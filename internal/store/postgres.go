package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/namecast/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresStore.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 1
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return NewPostgresWithPool(pool), nil
}

// NewPostgresWithPool wraps an existing pool.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS evaluations (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	overall_score DOUBLE PRECISION NOT NULL,
	result        JSONB NOT NULL,
	evaluated_at  TIMESTAMPTZ NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_evaluations_lower_name ON evaluations(lower(name));
CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveEvaluation(ctx context.Context, result *model.EvaluationResult) (string, error) {
	raw, err := encodeResult(result)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO evaluations (id, name, overall_score, result, evaluated_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, result.Name, result.OverallScore, raw, result.EvaluatedAt.UTC(), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: insert evaluation %s", result.Name)
	}
	return id, nil
}

func (s *PostgresStore) GetEvaluation(ctx context.Context, id string) (*Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, result, created_at FROM evaluations WHERE id = $1`, id,
	)
	r, err := scanPgRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get evaluation %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get evaluation %s", id)
	}
	return r, nil
}

func (s *PostgresStore) ListEvaluations(ctx context.Context, filter ListFilter) ([]Record, error) {
	query := `SELECT id, result, created_at FROM evaluations`
	var args []any

	if filter.Name != "" {
		args = append(args, filter.Name)
		query += ` WHERE lower(name) = lower($1)`
	}
	args = append(args, filter.limit())
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list evaluations")
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanPgRecord(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan evaluation")
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list evaluations iterate")
}

func scanPgRecord(row pgx.Row) (*Record, error) {
	var r Record
	var raw []byte
	if err := row.Scan(&r.ID, &raw, &r.CreatedAt); err != nil {
		return nil, err
	}
	if err := decodeResult(raw, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
