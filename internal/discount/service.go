package discount

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wondergroup-de/wonder-events-backend/internal/pricing"
)

type CreateRequest struct {
	Code  string
	Kind  pricing.DiscountKind
	Value decimal.Decimal
}

type UpdateRequest struct {
	Code  *string
	Kind  *pricing.DiscountKind
	Value *decimal.Decimal
}

// Service defines business logic for the discount registry.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Discount, error)
	GetByID(ctx context.Context, id string) (*Discount, error)
	GetByCode(ctx context.Context, code string) (*Discount, error)
	List(ctx context.Context, filter Filter) ([]*Discount, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Discount, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new discount Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Discount, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if err := validate(req.Kind, req.Value); err != nil {
		return nil, err
	}

	d := &Discount{
		Code:  code,
		Kind:  req.Kind,
		Value: req.Value,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Discount, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByCode(ctx context.Context, code string) (*Discount, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Discount, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Discount, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, ErrEmptyCode
		}
		d.Code = code
	}
	if req.Kind != nil {
		d.Kind = *req.Kind
	}
	if req.Value != nil {
		d.Value = *req.Value
	}
	if err := validate(d.Kind, d.Value); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validate(kind pricing.DiscountKind, value decimal.Decimal) error {
	if kind != pricing.DiscountPercentage && kind != pricing.DiscountFlat {
		return ErrInvalidKind
	}
	if !value.IsPositive() {
		return ErrInvalidValue
	}
	if kind == pricing.DiscountPercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidValue
	}
	return nil
}
