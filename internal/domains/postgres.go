package domains

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const pgDuplicateKeyCode = "23505"

// PostgresStore persists domains in a PostgreSQL table managed by
// cmd/migrate. Keywords are stored as a jsonb array to keep ordering.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenPostgres opens a connection pool against the given DSN and verifies it
// with a bounded ping.
func OpenPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open domain store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping domain store: %w", err)
	}

	return &PostgresStore{
		db:     db,
		logger: logger.With("system", "domain-store"),
	}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// GetAll returns every persisted domain in creation order, seeds first so
// hydration preserves the default-domain position.
func (s *PostgresStore) GetAll(ctx context.Context) ([]Domain, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, keywords, description, seed, created_at
		FROM domains
		ORDER BY seed DESC, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query domains: %w", err)
	}
	defer rows.Close()

	out := make([]Domain, 0)
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domains: %w", err)
	}
	return out, nil
}

// Get returns a single persisted domain or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Domain, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, keywords, description, seed, created_at
		FROM domains
		WHERE id = $1`, id)

	d, err := scanDomain(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Put upserts a domain keyed by id. Runtime registrations are last-write-wins
// to mirror registry semantics; a unique violation can still surface when two
// processes race on insert, and is reported as such.
func (s *PostgresStore) Put(ctx context.Context, d Domain) error {
	if d.ID == "" {
		return ErrInvalidDomain
	}

	keywords, err := json.Marshal(d.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO domains (id, display_name, keywords, description, seed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			keywords = EXCLUDED.keywords,
			description = EXCLUDED.description`,
		d.ID, d.DisplayName, keywords, d.Description, d.Seed, createdAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateKeyCode {
			return fmt.Errorf("domain %s: concurrent insert: %w", d.ID, err)
		}
		return fmt.Errorf("upsert domain %s: %w", d.ID, err)
	}

	s.logger.Info("domain persisted", "id", d.ID, "seed", d.Seed)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDomain(row scanner) (Domain, error) {
	var (
		d            Domain
		keywordsJSON []byte
	)
	if err := row.Scan(
		&d.ID, &d.DisplayName, &keywordsJSON,
		&d.Description, &d.Seed, &d.CreatedAt,
	); err != nil {
		return Domain{}, err
	}

	if err := json.Unmarshal(keywordsJSON, &d.Keywords); err != nil {
		return Domain{}, fmt.Errorf("unmarshal keywords for %s: %w", d.ID, err)
	}
	return d, nil
}
