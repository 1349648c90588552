package items

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Connect opens a pool and pings it.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// PostgresStore keeps items in a PostgreSQL table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the table and inserts Seed when it is empty.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create items table: %w", err)
	}

	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM items`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		return nil
	}

	batch, err := seedBatch(Seed())
	if err != nil {
		return err
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to seed items: %w", err)
	}
	return nil
}

// seedBatch inserts seed with its fixed ids and moves the id sequence past them.
func seedBatch(seed []Item) (*pgx.Batch, error) {
	batch := &pgx.Batch{}
	for _, it := range seed {
		created, err := time.Parse(TimeLayout, it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at for seed item %d: %w", it.ID, err)
		}
		batch.Queue(`INSERT INTO items (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
			it.ID, it.Name, it.Description, created)
	}
	batch.Queue(`SELECT setval(pg_get_serial_sequence('items', 'id'), (SELECT max(id) FROM items))`)
	return batch, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Item, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, description, created_at FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Item, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, description, created_at FROM items WHERE id = $1`, id)
	if err != nil {
		return Item{}, fmt.Errorf("failed to get item: %w", err)
	}
	it, err := pgx.CollectOneRow(rows, scanItem)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, notFound(id)
	}
	if err != nil {
		return Item{}, fmt.Errorf("failed to get item: %w", err)
	}
	return it, nil
}

func (s *PostgresStore) Create(ctx context.Context, in NewItem) (Item, error) {
	if err := in.Validate(); err != nil {
		return Item{}, err
	}
	rows, err := s.pool.Query(ctx,
		`INSERT INTO items (name, description) VALUES ($1, $2) RETURNING id, name, description, created_at`,
		in.Name, in.Description)
	if err != nil {
		return Item{}, fmt.Errorf("failed to create item: %w", err)
	}
	it, err := pgx.CollectOneRow(rows, scanItem)
	if err != nil {
		return Item{}, fmt.Errorf("failed to create item: %w", err)
	}
	return it, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func scanItem(row pgx.CollectableRow) (Item, error) {
	var (
		it      Item
		created time.Time
	)
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &created); err != nil {
		return Item{}, err
	}
	it.CreatedAt = formatTime(created)
	return it, nil
}
