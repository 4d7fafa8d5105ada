package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/juicebar/internal/domain/admin"
)

const (
	createAdminSQL = `INSERT INTO administrators (doc) VALUES ($1)`

	findAdminByUsernameSQL = `SELECT doc FROM administrators
		WHERE doc->>'username' = $1 ORDER BY created_at LIMIT 1`
)

var _ admin.Repository = (*AdminRepository)(nil)

type adminDoc struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// AdminRepository implements admin.Repository backed by PostgreSQL.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns an AdminRepository that uses the given pool.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// Create inserts an administrator document. Usernames are not unique; a
// lookup returns the oldest match.
func (r *AdminRepository) Create(ctx context.Context, a *admin.Administrator) error {
	doc, err := json.Marshal(adminDoc{Username: a.Username, PasswordHash: a.PasswordHash})
	if err != nil {
		return fmt.Errorf("marshaling administrator: %w", err)
	}
	if _, err := r.pool.Exec(ctx, createAdminSQL, doc); err != nil {
		return fmt.Errorf("creating administrator %q: %w", a.Username, err)
	}
	return nil
}

// FindByUsername returns admin.ErrNotFound when no document matches.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*admin.Administrator, error) {
	var raw []byte
	if err := r.pool.QueryRow(ctx, findAdminByUsernameSQL, username).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admin.ErrNotFound
		}
		return nil, fmt.Errorf("finding administrator %q: %w", username, err)
	}

	var doc adminDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling administrator %q: %w", username, err)
	}
	return &admin.Administrator{Username: doc.Username, PasswordHash: doc.PasswordHash}, nil
}
