package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/fatehq/fate-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_snapshot": `INSERT INTO snapshots (id, strategy, revision, entries, created_at) VALUES ($1, $2, $3, $4, $5)`,
	"get_snapshot":    `SELECT id, strategy, revision, entries, created_at FROM snapshots WHERE id = $1`,
	"latest_snapshot": `SELECT id, strategy, revision, entries, created_at FROM snapshots WHERE strategy = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
	"delete_snapshot": `DELETE FROM snapshots WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool, used by tests with pgxmock.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	strategy   TEXT NOT NULL,
	revision   TEXT NOT NULL,
	entries    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_snapshots_strategy ON snapshots(strategy);
CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap model.Snapshot) (*model.Snapshot, error) {
	snap.ID = uuid.New().String()
	snap.CreatedAt = time.Now().UTC()

	entriesJSON, err := json.Marshal(snap.Entries)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal entries")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, strategy, revision, entries, created_at) VALUES ($1, $2, $3, $4, $5)`,
		snap.ID, snap.Strategy, snap.Revision, entriesJSON, snap.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert snapshot")
	}
	return &snap, nil
}

func (s *PostgresStore) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, strategy, revision, entries, created_at FROM snapshots WHERE id = $1`,
		id,
	)
	snap, err := scanPgSnapshot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errSnapshotNotFound
		}
		return nil, err
	}
	return snap, nil
}

func (s *PostgresStore) LatestSnapshot(ctx context.Context, strategy string) (*model.Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, strategy, revision, entries, created_at FROM snapshots
		 WHERE strategy = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
		strategy,
	)
	snap, err := scanPgSnapshot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return snap, nil
}

func (s *PostgresStore) ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]model.Snapshot, error) {
	query := `SELECT id, strategy, revision, entries, created_at FROM snapshots WHERE 1=1`
	var args []any

	if filter.Strategy != "" {
		args = append(args, filter.Strategy)
		query += ` AND strategy = $1`
	}
	if filter.Revision != "" {
		args = append(args, filter.Revision)
		query += ` AND revision = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list snapshots")
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		snap, err := scanPgSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}
	return snaps, eris.Wrap(rows.Err(), "postgres: iterate snapshots")
}

func (s *PostgresStore) DeleteSnapshot(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM snapshots WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete snapshot %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("snapshot not found: %s", id)
	}
	return nil
}

func scanPgSnapshot(row scannable) (*model.Snapshot, error) {
	var snap model.Snapshot
	var entriesJSON []byte

	if err := row.Scan(&snap.ID, &snap.Strategy, &snap.Revision, &entriesJSON, &snap.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, eris.Wrap(err, "postgres: scan snapshot")
	}
	if err := json.Unmarshal(entriesJSON, &snap.Entries); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal entries")
	}
	return &snap, nil
}
