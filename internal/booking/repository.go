package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for bookings and the availability ledger.
type Repository interface {
	// CreateWithReservation persists the booking and its line snapshot.
	// Availability of every finite-stock item in reservations (item id ->
	// requested quantity) is re-checked under a row lock inside the same
	// transaction, so check and reserve are one atomic unit. The booking
	// reference may be extended with a sequence suffix to stay unique.
	CreateWithReservation(ctx context.Context, b *Booking, reservations map[string]int64) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByReference(ctx context.Context, reference string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error

	// LedgerForItem returns all reservations of the item across bookings,
	// for advisory availability checks.
	LedgerForItem(ctx context.Context, itemID string) ([]LedgerEntry, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// committedQuery sums quantities of the item reserved by bookings whose
// half-open window overlaps [$2, $3). Completed bookings have returned their
// equipment and are excluded.
const committedQuery = `
	SELECT COALESCE(SUM(bl.quantity), 0)
	FROM public.booking_lines bl
	JOIN public.bookings bk ON bl.booking_id = bk.id
	WHERE bl.kind = 'item'
	  AND bl.ref_id = $1
	  AND bk.status <> 'completed'
	  AND bk.start_time < $3
	  AND bk.end_time > $2
`

func (r *pgxRepository) CreateWithReservation(ctx context.Context, b *Booking, reservations map[string]int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock items in a stable order to avoid deadlocks between concurrent
	// bookings touching the same items.
	itemIDs := make([]string, 0, len(reservations))
	for id := range reservations {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)

	for _, itemID := range itemIDs {
		var stock *int32
		err := tx.QueryRow(ctx,
			`SELECT stock FROM public.inventory_items WHERE id = $1 FOR UPDATE`,
			itemID,
		).Scan(&stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrItemNotFound
			}
			return fmt.Errorf("lock item %s failed: %w", itemID, err)
		}
		if stock == nil {
			// Unbounded stock never blocks a booking.
			continue
		}

		var committed int64
		if err := tx.QueryRow(ctx, committedQuery, itemID, b.StartTime, b.EndTime).Scan(&committed); err != nil {
			return fmt.Errorf("sum committed quantity for item %s failed: %w", itemID, err)
		}
		if int64(*stock)-committed < reservations[itemID] {
			return ErrInsufficientStock
		}
	}

	// The base reference is not unique across same-day bookings with a
	// shared name prefix; append a sequence suffix on collision.
	var clashes int
	if err := tx.QueryRow(ctx,
		`SELECT count(*) FROM public.bookings WHERE reference = $1 OR reference LIKE $1 || '-%'`,
		b.Reference,
	).Scan(&clashes); err != nil {
		return fmt.Errorf("check reference collisions failed: %w", err)
	}
	if clashes > 0 {
		b.Reference = fmt.Sprintf("%s-%d", b.Reference, clashes+1)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"reference", "customer_name", "customer_email",
			"start_time", "end_time", "tariff_mode", "tariff_units",
			"subtotal", "discount_code", "discount_amount", "total",
			"status", "notes",
		).
		Values(
			b.Reference, b.CustomerName, b.CustomerEmail,
			b.StartTime, b.EndTime, b.TariffMode, b.TariffUnits,
			b.Subtotal, b.DiscountCode, b.DiscountAmount, b.Total,
			b.Status, b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	for i, line := range b.Lines {
		var refID *string
		if line.RefID != "" {
			refID = &line.RefID
		}
		lineQuery, lineArgs, err := psql.Insert("public.booking_lines").
			Columns("booking_id", "position", "kind", "ref_id", "description", "quantity", "amount").
			Values(b.ID, i, line.Kind, refID, line.Description, line.Quantity, line.Amount).
			ToSql()
		if err != nil {
			return fmt.Errorf("build create booking line query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, lineQuery, lineArgs...); err != nil {
			return fmt.Errorf("create booking line failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

const bookingColumns = `
	id, reference, customer_name, customer_email,
	start_time, end_time, tariff_mode, tariff_units,
	subtotal, discount_code, discount_amount, total,
	status, notes, created_at, updated_at
`

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return r.get(ctx, "id", id)
}

func (r *pgxRepository) GetByReference(ctx context.Context, reference string) (*Booking, error) {
	return r.get(ctx, "reference", reference)
}

func (r *pgxRepository) get(ctx context.Context, column, value string) (*Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM public.bookings WHERE %s = $1", bookingColumns, column)

	var b Booking
	if err := r.pool.QueryRow(ctx, query, value).Scan(
		&b.ID, &b.Reference, &b.CustomerName, &b.CustomerEmail,
		&b.StartTime, &b.EndTime, &b.TariffMode, &b.TariffUnits,
		&b.Subtotal, &b.DiscountCode, &b.DiscountAmount, &b.Total,
		&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	lines, err := r.linesFor(ctx, []string{b.ID})
	if err != nil {
		return nil, err
	}
	b.Lines = lines[b.ID]
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "reference", "customer_name", "customer_email",
		"start_time", "end_time", "tariff_mode", "tariff_units",
		"subtotal", "discount_code", "discount_amount", "total",
		"status", "notes", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.bookings")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Customer != "" {
		query = query.Where(squirrel.ILike{"customer_name": "%" + filter.Customer + "%"})
	}
	if filter.StartTimeFrom != nil {
		query = query.Where(squirrel.GtOrEq{"start_time": filter.StartTimeFrom})
	}
	if filter.StartTimeTo != nil {
		query = query.Where(squirrel.LtOrEq{"start_time": filter.StartTimeTo})
	}

	orderBy := "start_time"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	orderDir := "DESC"
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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.Reference, &b.CustomerName, &b.CustomerEmail,
			&b.StartTime, &b.EndTime, &b.TariffMode, &b.TariffUnits,
			&b.Subtotal, &b.DiscountCode, &b.DiscountAmount, &b.Total,
			&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}

	if len(bookings) > 0 {
		ids := make([]string, len(bookings))
		for i, b := range bookings {
			ids[i] = b.ID
		}
		lines, err := r.linesFor(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for _, b := range bookings {
			b.Lines = lines[b.ID]
		}
	}

	return bookings, total, nil
}

// linesFor loads invoice line snapshots for the given bookings, keyed by
// booking id and ordered by line position.
func (r *pgxRepository) linesFor(ctx context.Context, bookingIDs []string) (map[string][]InvoiceLine, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"booking_id", "kind", "ref_id", "description", "quantity", "amount",
	).
		From("public.booking_lines").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("booking_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking lines query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load booking lines failed: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]InvoiceLine, len(bookingIDs))
	for rows.Next() {
		var bookingID string
		var refID *string
		var line InvoiceLine
		if err := rows.Scan(&bookingID, &line.Kind, &refID, &line.Description, &line.Quantity, &line.Amount); err != nil {
			return nil, fmt.Errorf("scan booking line failed: %w", err)
		}
		if refID != nil {
			line.RefID = *refID
		}
		result[bookingID] = append(result[bookingID], line)
	}
	return result, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("notes", b.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) LedgerForItem(ctx context.Context, itemID string) ([]LedgerEntry, error) {
	const query = `
		SELECT bl.quantity, bk.start_time, bk.end_time, bk.status
		FROM public.booking_lines bl
		JOIN public.bookings bk ON bl.booking_id = bk.id
		WHERE bl.kind = 'item' AND bl.ref_id = $1
		ORDER BY bk.start_time
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("load ledger for item failed: %w", err)
	}
	defer rows.Close()

	var ledger []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.Quantity, &e.StartTime, &e.EndTime, &e.Status); err != nil {
			return nil, fmt.Errorf("scan ledger entry failed: %w", err)
		}
		ledger = append(ledger, e)
	}
	return ledger, rows.Err()
}
