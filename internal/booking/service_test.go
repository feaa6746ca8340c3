package booking

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wondergroup-de/wonder-events-backend/internal/catalog"
	"github.com/wondergroup-de/wonder-events-backend/internal/discount"
	"github.com/wondergroup-de/wonder-events-backend/internal/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeCatalog is an in-memory catalog.Service covering the lookups the
// booking service needs.
type fakeCatalog struct {
	items    map[string]*catalog.Item
	services map[string]*catalog.ServiceItem
}

func (f *fakeCatalog) GetItem(_ context.Context, id string) (*catalog.Item, error) {
	if it, ok := f.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, catalog.ErrItemNotFound
}

func (f *fakeCatalog) GetService(_ context.Context, id string) (*catalog.ServiceItem, error) {
	if s, ok := f.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, catalog.ErrServiceNotFound
}

func (f *fakeCatalog) CreateItem(context.Context, catalog.CreateItemRequest) (*catalog.Item, error) {
	panic("not used")
}
func (f *fakeCatalog) ListItems(context.Context, catalog.ItemFilter) ([]*catalog.Item, int, error) {
	panic("not used")
}
func (f *fakeCatalog) UpdateItem(context.Context, string, catalog.UpdateItemRequest) (*catalog.Item, error) {
	panic("not used")
}
func (f *fakeCatalog) DeleteItem(context.Context, string) error { panic("not used") }
func (f *fakeCatalog) CreateService(context.Context, catalog.CreateServiceRequest) (*catalog.ServiceItem, error) {
	panic("not used")
}
func (f *fakeCatalog) ListServices(context.Context, catalog.ServiceFilter) ([]*catalog.ServiceItem, int, error) {
	panic("not used")
}
func (f *fakeCatalog) UpdateService(context.Context, string, catalog.UpdateServiceRequest) (*catalog.ServiceItem, error) {
	panic("not used")
}
func (f *fakeCatalog) DeleteService(context.Context, string) error { panic("not used") }

// fakeDiscounts is an in-memory discount.Service keyed by code.
type fakeDiscounts struct {
	byCode map[string]*discount.Discount
}

func (f *fakeDiscounts) GetByCode(_ context.Context, code string) (*discount.Discount, error) {
	if d, ok := f.byCode[code]; ok {
		return d, nil
	}
	return nil, discount.ErrNotFound
}

func (f *fakeDiscounts) Create(context.Context, discount.CreateRequest) (*discount.Discount, error) {
	panic("not used")
}
func (f *fakeDiscounts) GetByID(context.Context, string) (*discount.Discount, error) {
	panic("not used")
}
func (f *fakeDiscounts) List(context.Context, discount.Filter) ([]*discount.Discount, int, error) {
	panic("not used")
}
func (f *fakeDiscounts) Update(context.Context, string, discount.UpdateRequest) (*discount.Discount, error) {
	panic("not used")
}
func (f *fakeDiscounts) Delete(context.Context, string) error { panic("not used") }

// fakeRepo mimics the repository's transactional contract in memory: it
// re-checks availability before accepting a booking, exactly like the SQL
// implementation does under row locks.
type fakeRepo struct {
	catalog  *fakeCatalog
	bookings []*Booking
	nextID   int
}

func (f *fakeRepo) ledger(itemID string) []LedgerEntry {
	var entries []LedgerEntry
	for _, b := range f.bookings {
		for _, l := range b.Lines {
			if l.Kind == LineItem && l.RefID == itemID {
				entries = append(entries, LedgerEntry{
					Quantity:  l.Quantity,
					StartTime: b.StartTime,
					EndTime:   b.EndTime,
					Status:    b.Status,
				})
			}
		}
	}
	return entries
}

func (f *fakeRepo) CreateWithReservation(_ context.Context, b *Booking, reservations map[string]int64) error {
	for itemID, qty := range reservations {
		it, ok := f.catalog.items[itemID]
		if !ok {
			return ErrItemNotFound
		}
		if available, _ := CheckAvailability(it, qty, b.StartTime, b.EndTime, f.ledger(itemID)); !available {
			return ErrInsufficientStock
		}
	}

	f.nextID++
	b.ID = fmt.Sprintf("bkg-%d", f.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	f.bookings = append(f.bookings, &stored)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) GetByReference(_ context.Context, ref string) (*Booking, error) {
	for _, b := range f.bookings {
		if b.Reference == ref {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(context.Context, Filter) ([]*Booking, int, error) {
	return f.bookings, len(f.bookings), nil
}

func (f *fakeRepo) Update(_ context.Context, b *Booking) error {
	for i, existing := range f.bookings {
		if existing.ID == b.ID {
			cp := *b
			f.bookings[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeRepo) LedgerForItem(_ context.Context, itemID string) ([]LedgerEntry, error) {
	return f.ledger(itemID), nil
}

func newTestService() (Service, *fakeRepo, *fakeCatalog) {
	cat := &fakeCatalog{
		items: map[string]*catalog.Item{
			"speaker": {
				ID: "speaker", Name: "Speaker",
				HourlyPrice: dec("8"), DailyPrice: dec("50"),
				Stock: stockOf(5),
			},
			"cups": {
				ID: "cups", Name: "Cups",
				HourlyPrice: dec("0.10"), DailyPrice: dec("0.50"),
			},
		},
		services: map[string]*catalog.ServiceItem{
			"setup": {ID: "setup", Name: "Setup", HourlyPrice: dec("30")},
		},
	}
	discounts := &fakeDiscounts{
		byCode: map[string]*discount.Discount{
			"TEAM10": {ID: "d1", Code: "TEAM10", Kind: pricing.DiscountPercentage, Value: dec("10")},
		},
	}
	repo := &fakeRepo{catalog: cat}
	return NewService(repo, cat, discounts), repo, cat
}

func twoDayWindow() (time.Time, time.Time) {
	start := time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC)
	return start, start.Add(48 * time.Hour)
}

func TestServiceCreate(t *testing.T) {
	svc, repo, _ := newTestService()
	start, end := twoDayWindow()

	b, err := svc.Create(context.Background(), CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines: []CartLine{
				{Kind: LineItem, RefID: "speaker", Quantity: 2},
				{Kind: LineService, RefID: "setup", Quantity: 4},
			},
			StartTime:    start,
			EndTime:      end,
			DiscountCode: "TEAM10",
		},
		CustomerName:  "Mustermann GmbH",
		CustomerEmail: "info@mustermann.example",
	})
	require.NoError(t, err)

	assert.Equal(t, "288.00", b.Total.StringFixed(2))
	assert.Equal(t, "320.00", b.Subtotal.StringFixed(2))
	assert.Equal(t, string(pricing.ModeDaily), b.TariffMode)
	assert.EqualValues(t, 2, b.TariffUnits)
	assert.Equal(t, StatusOpen, b.Status)
	require.NotNil(t, b.DiscountCode)
	assert.Equal(t, "TEAM10", *b.DiscountCode)

	require.Len(t, b.Lines, 3)
	assert.Equal(t, "Speaker", b.Lines[0].Description)
	assert.Equal(t, "Setup", b.Lines[1].Description)
	assert.Equal(t, LineDiscount, b.Lines[2].Kind)

	assert.True(t, strings.HasPrefix(b.Reference, "WE-"))
	assert.True(t, strings.HasSuffix(b.Reference, "MUS"))

	require.Len(t, repo.bookings, 1)
}

func TestServiceCreateInsufficientStock(t *testing.T) {
	svc, repo, _ := newTestService()
	start, end := twoDayWindow()

	_, err := svc.Create(context.Background(), CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines:     []CartLine{{Kind: LineItem, RefID: "speaker", Quantity: 3}},
			StartTime: start,
			EndTime:   end,
		},
		CustomerName: "First Customer",
	})
	require.NoError(t, err)

	// Stock is 5 and 3 are already out over the same window.
	_, err = svc.Create(context.Background(), CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines:     []CartLine{{Kind: LineItem, RefID: "speaker", Quantity: 3}},
			StartTime: start.Add(24 * time.Hour),
			EndTime:   end.Add(24 * time.Hour),
		},
		CustomerName: "Second Customer",
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Len(t, repo.bookings, 1, "failed booking must not be persisted")

	// A disjoint window sees the full stock again.
	_, err = svc.Create(context.Background(), CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines:     []CartLine{{Kind: LineItem, RefID: "speaker", Quantity: 3}},
			StartTime: end.Add(24 * time.Hour),
			EndTime:   end.Add(72 * time.Hour),
		},
		CustomerName: "Second Customer",
	})
	assert.NoError(t, err)
}

func TestServiceCreateDuplicateCartEntriesReserveCombined(t *testing.T) {
	svc, _, _ := newTestService()
	start, end := twoDayWindow()

	// 3 + 3 of a stock-5 item in one cart must be rejected as a whole.
	_, err := svc.Create(context.Background(), CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines: []CartLine{
				{Kind: LineItem, RefID: "speaker", Quantity: 3},
				{Kind: LineItem, RefID: "speaker", Quantity: 3},
			},
			StartTime: start,
			EndTime:   end,
		},
		CustomerName: "Greedy",
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestServiceCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()
	start, end := twoDayWindow()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines:     []CartLine{{Kind: LineItem, RefID: "speaker", Quantity: 1}},
			StartTime: start,
			EndTime:   end,
		},
	})
	assert.ErrorIs(t, err, ErrCustomerRequired)

	_, err = svc.Create(ctx, CreateRequest{
		QuoteRequest: QuoteRequest{
			StartTime: start,
			EndTime:   end,
		},
		CustomerName: "Kunde",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.Create(ctx, CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines:     []CartLine{{Kind: LineItem, RefID: "speaker", Quantity: 1}},
			StartTime: end,
			EndTime:   start,
		},
		CustomerName: "Kunde",
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = svc.Create(ctx, CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines:     []CartLine{{Kind: LineItem, RefID: "missing", Quantity: 1}},
			StartTime: start,
			EndTime:   end,
		},
		CustomerName: "Kunde",
	})
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.Create(ctx, CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines:     []CartLine{{Kind: LineItem, RefID: "speaker", Quantity: 0}},
			StartTime: start,
			EndTime:   end,
		},
		CustomerName: "Kunde",
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestServiceQuoteUnknownDiscountIsSoftFailure(t *testing.T) {
	svc, _, _ := newTestService()
	start, end := twoDayWindow()

	inv, err := svc.Quote(context.Background(), QuoteRequest{
		Lines:        []CartLine{{Kind: LineItem, RefID: "speaker", Quantity: 1}},
		StartTime:    start,
		EndTime:      end,
		DiscountCode: "DOESNOTEXIST",
	})
	require.NoError(t, err)
	assert.True(t, inv.DiscountUnknown)
	assert.True(t, inv.DiscountAmount.IsZero())
	assert.Equal(t, "100.00", inv.Total.StringFixed(2))
}

func TestServiceInvoiceIsFrozenSnapshot(t *testing.T) {
	svc, _, cat := newTestService()
	start, end := twoDayWindow()

	b, err := svc.Create(context.Background(), CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines:     []CartLine{{Kind: LineItem, RefID: "speaker", Quantity: 1}},
			StartTime: start,
			EndTime:   end,
		},
		CustomerName: "Kunde",
	})
	require.NoError(t, err)
	require.Equal(t, "100.00", b.Total.StringFixed(2))

	// A later price hike must not affect the stored invoice.
	cat.items["speaker"].DailyPrice = dec("999")

	got, err := svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", got.Total.StringFixed(2))
}

func TestServiceUpdateStatusAndNotes(t *testing.T) {
	svc, _, _ := newTestService()
	start, end := twoDayWindow()
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines:     []CartLine{{Kind: LineItem, RefID: "speaker", Quantity: 1}},
			StartTime: start,
			EndTime:   end,
		},
		CustomerName: "Kunde",
	})
	require.NoError(t, err)

	status := string(StatusInProgress)
	notes := "access via the rear courtyard"
	updated, err := svc.Update(ctx, b.ID, UpdateRequest{Status: &status, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, updated.Status)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, b.Total, updated.Total, "amounts are immutable")

	bad := "shipped"
	_, err = svc.Update(ctx, b.ID, UpdateRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestServiceCheckItemAvailability(t *testing.T) {
	svc, _, _ := newTestService()
	start, end := twoDayWindow()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{
		QuoteRequest: QuoteRequest{
			Lines:     []CartLine{{Kind: LineItem, RefID: "speaker", Quantity: 3}},
			StartTime: start,
			EndTime:   end,
		},
		CustomerName: "Kunde",
	})
	require.NoError(t, err)

	res, err := svc.CheckItemAvailability(ctx, "speaker", 3, start, end)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.EqualValues(t, 2, res.Remaining)

	res, err = svc.CheckItemAvailability(ctx, "cups", 10000, start, end)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.EqualValues(t, -1, res.Remaining)

	_, err = svc.CheckItemAvailability(ctx, "speaker", 0, start, end)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CheckItemAvailability(ctx, "speaker", 1, end, start)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
