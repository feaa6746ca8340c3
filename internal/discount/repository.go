package discount

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for the discount registry.
type Repository interface {
	Create(ctx context.Context, d *Discount) error
	GetByID(ctx context.Context, id string) (*Discount, error)
	GetByCode(ctx context.Context, code string) (*Discount, error)
	List(ctx context.Context, filter Filter) ([]*Discount, int, error)
	Update(ctx context.Context, d *Discount) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, d *Discount) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.discounts").
		Columns("code", "kind", "value").
		Values(d.Code, d.Kind, d.Value).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create discount query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrCodeTaken
		}
		return fmt.Errorf("create discount failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Discount, error) {
	return r.get(ctx, squirrel.Eq{"id": id})
}

// GetByCode looks up a code with an exact, case-sensitive match.
func (r *pgxRepository) GetByCode(ctx context.Context, code string) (*Discount, error) {
	return r.get(ctx, squirrel.Eq{"code": code})
}

func (r *pgxRepository) get(ctx context.Context, where squirrel.Eq) (*Discount, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "code", "kind", "value", "created_at", "updated_at",
	).
		From("public.discounts").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get discount query failed: %w", err)
	}

	var d Discount
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&d.ID, &d.Code, &d.Kind, &d.Value, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get discount failed: %w", err)
	}
	return &d, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Discount, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "code", "kind", "value", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.discounts")

	orderBy := "code"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	orderDir := "ASC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	query = query.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list discounts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list discounts failed: %w", err)
	}
	defer rows.Close()

	var discounts []*Discount
	var total int
	for rows.Next() {
		var d Discount
		if err := rows.Scan(&d.ID, &d.Code, &d.Kind, &d.Value, &d.CreatedAt, &d.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan discount failed: %w", err)
		}
		discounts = append(discounts, &d)
	}
	return discounts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, d *Discount) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.discounts").
		Set("code", d.Code).
		Set("kind", d.Kind).
		Set("value", d.Value).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update discount query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrCodeTaken
		}
		return fmt.Errorf("update discount failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.discounts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete discount query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete discount failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
