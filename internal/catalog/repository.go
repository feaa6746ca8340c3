package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for inventory items and services.
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]*Item, int, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id string) error

	CreateService(ctx context.Context, svc *ServiceItem) error
	GetService(ctx context.Context, id string) (*ServiceItem, error)
	ListServices(ctx context.Context, filter ServiceFilter) ([]*ServiceItem, int, error)
	UpdateService(ctx context.Context, svc *ServiceItem) error
	DeleteService(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CreateItem(ctx context.Context, item *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.inventory_items").
		Columns("name", "category", "hourly_price", "daily_price", "stock").
		Values(item.Name, item.Category, item.HourlyPrice, item.DailyPrice, item.Stock).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *pgxRepository) GetItem(ctx context.Context, id string) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "category", "hourly_price", "daily_price", "stock",
		"created_at", "updated_at",
	).
		From("public.inventory_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	var it Item
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.Name, &it.Category, &it.HourlyPrice, &it.DailyPrice,
		&it.Stock, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return &it, nil
}

func (r *pgxRepository) ListItems(ctx context.Context, filter ItemFilter) ([]*Item, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "category", "hourly_price", "daily_price", "stock",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.inventory_items")

	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Name + "%"})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}

	query = applyListOptions(query, filter.SortBy, filter.SortOrder, "name", filter.Page, filter.PageSize)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	var total int
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Category, &it.HourlyPrice, &it.DailyPrice,
			&it.Stock, &it.CreatedAt, &it.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &it)
	}
	return items, total, nil
}

func (r *pgxRepository) UpdateItem(ctx context.Context, item *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.inventory_items").
		Set("name", item.Name).
		Set("category", item.Category).
		Set("hourly_price", item.HourlyPrice).
		Set("daily_price", item.DailyPrice).
		Set("stock", item.Stock).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteItem(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.inventory_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *pgxRepository) CreateService(ctx context.Context, svc *ServiceItem) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.service_items").
		Columns("name", "hourly_price").
		Values(svc.Name, svc.HourlyPrice).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create service query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt)
}

func (r *pgxRepository) GetService(ctx context.Context, id string) (*ServiceItem, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "hourly_price", "created_at", "updated_at",
	).
		From("public.service_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get service query failed: %w", err)
	}

	var s ServiceItem
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.Name, &s.HourlyPrice, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) ListServices(ctx context.Context, filter ServiceFilter) ([]*ServiceItem, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "hourly_price", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.service_items")

	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Name + "%"})
	}

	query = applyListOptions(query, filter.SortBy, filter.SortOrder, "name", filter.Page, filter.PageSize)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list services query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	var services []*ServiceItem
	var total int
	for rows.Next() {
		var s ServiceItem
		if err := rows.Scan(&s.ID, &s.Name, &s.HourlyPrice, &s.CreatedAt, &s.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan service failed: %w", err)
		}
		services = append(services, &s)
	}
	return services, total, nil
}

func (r *pgxRepository) UpdateService(ctx context.Context, svc *ServiceItem) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.service_items").
		Set("name", svc.Name).
		Set("hourly_price", svc.HourlyPrice).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": svc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update service query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteService(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.service_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete service query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// applyListOptions adds sorting and pagination shared by both list queries.
func applyListOptions(query squirrel.SelectBuilder, sortBy, sortOrder, defaultSort string, page, pageSize int) squirrel.SelectBuilder {
	orderBy := defaultSort
	if sortBy != "" {
		orderBy = sortBy
	}
	orderDir := "ASC"
	if sortOrder != "" {
		orderDir = sortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	return query.Limit(uint64(pageSize)).Offset(uint64(offset))
}
