package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pool-market-client/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolRepository handles database operations for pools
type PoolRepository struct {
	db *pgxpool.Pool
}

// NewPoolRepository creates a new pool repository
func NewPoolRepository(db *pgxpool.Pool) *PoolRepository {
	return &PoolRepository{db: db}
}

const poolColumns = `id, user_id, title, city, capacity, images, is_visible, price_per_day,
	description, busy_days, filters, visible_until, check_in, check_out, rules, views,
	created_at, updated_at`

func scanPool(row pgx.Row) (*models.Pool, error) {
	var p models.Pool
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.City, &p.Capacity, &p.Images, &p.IsVisible,
		&p.PricePerDay, &p.Description, &p.BusyDays, &p.Filters, &p.VisibleUntil,
		&p.CheckIn, &p.CheckOut, &p.Rules, &p.Views, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new pool
func (r *PoolRepository) Create(ctx context.Context, pool *models.Pool) error {
	query := `
		INSERT INTO pools (` + poolColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.db.Exec(ctx, query,
		pool.ID, pool.UserID, pool.Title, pool.City, pool.Capacity, pool.Images, pool.IsVisible,
		pool.PricePerDay, pool.Description, pool.BusyDays, pool.Filters, pool.VisibleUntil,
		pool.CheckIn, pool.CheckOut, pool.Rules, pool.Views, pool.CreatedAt, pool.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	return nil
}

// GetByID retrieves a pool by ID
func (r *PoolRepository) GetByID(ctx context.Context, id string) (*models.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools WHERE id = $1`
	pool, err := scanPool(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	return pool, nil
}

// List returns the pools matching q ordered by creation time
func (r *PoolRepository) List(ctx context.Context, q PoolQuery) ([]models.Pool, error) {
	var (
		where []string
		args  []any
	)
	if q.UserID != "" {
		args = append(args, q.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if q.City != "" {
		args = append(args, strings.TrimSpace(q.City))
		where = append(where, fmt.Sprintf("lower(trim(city)) = lower($%d)", len(args)))
	}
	if q.VisibleOnly {
		args = append(args, q.Now)
		where = append(where, fmt.Sprintf("is_visible AND (visible_until IS NULL OR visible_until > $%d)", len(args)))
	}

	query := `SELECT ` + poolColumns + ` FROM pools`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	defer rows.Close()

	pools := []models.Pool{}
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pool: %w", err)
		}
		pools = append(pools, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	return pools, nil
}

// Update stores every writable field of a pool
func (r *PoolRepository) Update(ctx context.Context, pool *models.Pool) error {
	query := `
		UPDATE pools
		SET title = $1, city = $2, capacity = $3, images = $4, is_visible = $5,
		    price_per_day = $6, description = $7, busy_days = $8, filters = $9,
		    visible_until = $10, check_in = $11, check_out = $12, rules = $13,
		    views = $14, updated_at = $15
		WHERE id = $16
	`
	result, err := r.db.Exec(ctx, query,
		pool.Title, pool.City, pool.Capacity, pool.Images, pool.IsVisible,
		pool.PricePerDay, pool.Description, pool.BusyDays, pool.Filters,
		pool.VisibleUntil, pool.CheckIn, pool.CheckOut, pool.Rules,
		pool.Views, pool.UpdatedAt, pool.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pool: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a pool by ID
func (r *PoolRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM pools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pool: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByUser returns the number of pools owned by a user
func (r *PoolRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM pools WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pools: %w", err)
	}
	return count, nil
}
