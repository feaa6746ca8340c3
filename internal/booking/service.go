package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wondergroup-de/wonder-events-backend/internal/catalog"
	"github.com/wondergroup-de/wonder-events-backend/internal/discount"
	"github.com/wondergroup-de/wonder-events-backend/internal/pricing"
)

type QuoteRequest struct {
	Lines        []CartLine
	StartTime    time.Time
	EndTime      time.Time
	DiscountCode string
}

type CreateRequest struct {
	QuoteRequest
	CustomerName  string
	CustomerEmail string
	Notes         string
}

type UpdateRequest struct {
	Status *string
	Notes  *string
}

// Availability is the advisory result of a stock check for one item over a
// window. Remaining is -1 for unbounded items.
type Availability struct {
	Available bool
	Remaining int64
}

type Service interface {
	// Quote prices a cart over a window without persisting anything.
	Quote(ctx context.Context, req QuoteRequest) (*pricing.Invoice, error)

	// Create prices the cart, reserves stock and persists the booking with a
	// frozen invoice snapshot, all before returning. Availability and insert
	// happen in one transaction, so concurrent bookings cannot oversell.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByReference(ctx context.Context, reference string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Update changes lifecycle status and notes only; the invoice snapshot
	// and window are immutable once committed.
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)

	// CheckItemAvailability runs the advisory stock check for an item.
	CheckItemAvailability(ctx context.Context, itemID string, quantity int64, start, end time.Time) (*Availability, error)
}

type service struct {
	repo        Repository
	catService  catalog.Service
	discService discount.Service
}

// NewService creates a new booking Service.
func NewService(repo Repository, catService catalog.Service, discService discount.Service) Service {
	return &service{
		repo:        repo,
		catService:  catService,
		discService: discService,
	}
}

// quote resolves the cart against the catalog and prices it. Returns the
// invoice together with the window classification so Create can persist both.
func (s *service) quote(ctx context.Context, req QuoteRequest) (*pricing.Invoice, pricing.Classification, error) {
	cls, err := pricing.Classify(req.StartTime, req.EndTime)
	if err != nil {
		return nil, pricing.Classification{}, ErrInvalidWindow
	}

	if len(req.Lines) == 0 {
		return nil, pricing.Classification{}, ErrEmptyCart
	}

	inputs := make([]pricing.LineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, pricing.Classification{}, ErrInvalidQuantity
		}

		switch line.Kind {
		case LineItem:
			it, err := s.catService.GetItem(ctx, line.RefID)
			if err != nil {
				if errors.Is(err, catalog.ErrItemNotFound) {
					return nil, pricing.Classification{}, ErrItemNotFound
				}
				return nil, pricing.Classification{}, err
			}
			inputs = append(inputs, pricing.LineInput{
				Description: it.Name,
				Quantity:    line.Quantity,
				HourlyRate:  it.HourlyPrice,
				DailyRate:   it.DailyPrice,
			})
		case LineService:
			svc, err := s.catService.GetService(ctx, line.RefID)
			if err != nil {
				if errors.Is(err, catalog.ErrServiceNotFound) {
					return nil, pricing.Classification{}, ErrServiceNotFound
				}
				return nil, pricing.Classification{}, err
			}
			inputs = append(inputs, pricing.LineInput{
				Description: svc.Name,
				Quantity:    line.Quantity,
				HourlyRate:  svc.HourlyPrice,
				FlatRate:    true,
			})
		default:
			return nil, pricing.Classification{}, ErrInvalidLineKind
		}
	}

	// Unknown codes are ignored by policy; the invoice carries a flag so the
	// caller can still warn.
	var disc *pricing.Discount
	if req.DiscountCode != "" {
		d, err := s.discService.GetByCode(ctx, req.DiscountCode)
		switch {
		case err == nil:
			disc = d.ToPricing()
		case errors.Is(err, discount.ErrNotFound):
			// leave disc nil
		default:
			return nil, pricing.Classification{}, err
		}
	}

	inv, err := pricing.Price(inputs, cls, req.DiscountCode, disc)
	if err != nil {
		if errors.Is(err, pricing.ErrEmptyCart) {
			return nil, pricing.Classification{}, ErrEmptyCart
		}
		return nil, pricing.Classification{}, err
	}
	return inv, cls, nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*pricing.Invoice, error) {
	inv, _, err := s.quote(ctx, req)
	return inv, err
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, ErrCustomerRequired
	}

	inv, cls, err := s.quote(ctx, req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	// Freeze the invoice into booking lines. Cart entries and invoice lines
	// are index-aligned; the discount line, when present, is last.
	lines := make([]InvoiceLine, 0, len(inv.Lines))
	for i, il := range inv.Lines {
		line := InvoiceLine{
			Kind:        LineDiscount,
			Description: il.Description,
			Quantity:    il.Quantity,
			Amount:      il.Amount,
		}
		if !il.IsDiscount {
			line.Kind = req.Lines[i].Kind
			line.RefID = req.Lines[i].RefID
		}
		lines = append(lines, line)
	}

	var discountCode *string
	if inv.DiscountCode != "" {
		code := inv.DiscountCode
		discountCode = &code
	}

	b := &Booking{
		Reference:      GenerateReference(name, time.Now().UTC()),
		CustomerName:   name,
		CustomerEmail:  strings.TrimSpace(req.CustomerEmail),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		TariffMode:     string(cls.Mode),
		TariffUnits:    cls.Units,
		Lines:          lines,
		Subtotal:       inv.Subtotal,
		DiscountCode:   discountCode,
		DiscountAmount: inv.DiscountAmount,
		Total:          inv.Total,
		Status:         StatusOpen,
		Notes:          req.Notes,
	}

	// Total requested quantity per item; duplicate cart entries for the same
	// item must reserve their combined quantity.
	reservations := make(map[string]int64)
	for _, line := range req.Lines {
		if line.Kind == LineItem {
			reservations[line.RefID] += line.Quantity
		}
	}

	if err := s.repo.CreateWithReservation(ctx, b, reservations); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByReference(ctx context.Context, reference string) (*Booking, error) {
	return s.repo.GetByReference(ctx, reference)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		st := Status(*req.Status)
		if !ValidStatus(st) {
			return nil, ErrInvalidStatus
		}
		b.Status = st
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) CheckItemAvailability(ctx context.Context, itemID string, quantity int64, start, end time.Time) (*Availability, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !end.After(start) {
		return nil, ErrInvalidWindow
	}

	it, err := s.catService.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	ledger, err := s.repo.LedgerForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	available, remaining := CheckAvailability(it, quantity, start, end, ledger)
	return &Availability{Available: available, Remaining: remaining}, nil
}
