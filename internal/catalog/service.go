package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name        string
	Category    Category
	HourlyPrice decimal.Decimal
	DailyPrice  decimal.Decimal
	Stock       *int32
}

type UpdateItemRequest struct {
	Name        *string
	Category    *Category
	HourlyPrice *decimal.Decimal
	DailyPrice  *decimal.Decimal
	Stock       *int32
	// ClearStock marks the item as unbounded again. Takes precedence over Stock.
	ClearStock bool
}

type CreateServiceRequest struct {
	Name        string
	HourlyPrice decimal.Decimal
}

type UpdateServiceRequest struct {
	Name        *string
	HourlyPrice *decimal.Decimal
}

// Service defines business logic for the equipment catalog. The catalog is
// read-mostly reference data: bookings read price snapshots from it, but
// edits here never touch already-priced bookings.
type Service interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]*Item, int, error)
	UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id string) error

	CreateService(ctx context.Context, req CreateServiceRequest) (*ServiceItem, error)
	GetService(ctx context.Context, id string) (*ServiceItem, error)
	ListServices(ctx context.Context, filter ServiceFilter) ([]*ServiceItem, int, error)
	UpdateService(ctx context.Context, id string, req UpdateServiceRequest) (*ServiceItem, error)
	DeleteService(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new catalog Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	category := req.Category
	if category == "" {
		category = CategorySingle
	}
	if !validCategory(category) {
		return nil, ErrInvalidCategory
	}
	if req.HourlyPrice.IsNegative() || req.DailyPrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	if req.Stock != nil && *req.Stock <= 0 {
		return nil, ErrInvalidStock
	}

	it := &Item{
		Name:        name,
		Category:    category,
		HourlyPrice: req.HourlyPrice,
		DailyPrice:  req.DailyPrice,
		Stock:       req.Stock,
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *service) ListItems(ctx context.Context, filter ItemFilter) ([]*Item, int, error) {
	return s.repo.ListItems(ctx, filter)
}

func (s *service) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error) {
	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		if !validCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		it.Category = *req.Category
	}
	if req.HourlyPrice != nil {
		if req.HourlyPrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		it.HourlyPrice = *req.HourlyPrice
	}
	if req.DailyPrice != nil {
		if req.DailyPrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		it.DailyPrice = *req.DailyPrice
	}
	if req.ClearStock {
		it.Stock = nil
	} else if req.Stock != nil {
		if *req.Stock <= 0 {
			return nil, ErrInvalidStock
		}
		it.Stock = req.Stock
	}

	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	if _, err := s.repo.GetItem(ctx, id); err != nil {
		return err
	}
	// No orphan check: booking lines are denormalized snapshots, so history
	// survives a catalog deletion.
	return s.repo.DeleteItem(ctx, id)
}

func (s *service) CreateService(ctx context.Context, req CreateServiceRequest) (*ServiceItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if req.HourlyPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	svc := &ServiceItem{
		Name:        name,
		HourlyPrice: req.HourlyPrice,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *service) GetService(ctx context.Context, id string) (*ServiceItem, error) {
	return s.repo.GetService(ctx, id)
}

func (s *service) ListServices(ctx context.Context, filter ServiceFilter) ([]*ServiceItem, int, error) {
	return s.repo.ListServices(ctx, filter)
}

func (s *service) UpdateService(ctx context.Context, id string, req UpdateServiceRequest) (*ServiceItem, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.HourlyPrice != nil {
		if req.HourlyPrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		svc.HourlyPrice = *req.HourlyPrice
	}

	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *service) DeleteService(ctx context.Context, id string) error {
	if _, err := s.repo.GetService(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteService(ctx, id)
}

func validCategory(c Category) bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}
