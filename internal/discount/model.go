package discount

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/apperror"
	"github.com/wondergroup-de/wonder-events-backend/internal/pricing"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "discount code not found")
	ErrCodeTaken    = apperror.New(http.StatusConflict, "discount code already exists")
	ErrEmptyCode    = apperror.New(http.StatusBadRequest, "code cannot be empty")
	ErrInvalidKind  = apperror.New(http.StatusBadRequest, "invalid discount kind")
	ErrInvalidValue = apperror.New(http.StatusBadRequest, "discount value must be positive")
)

// Discount is a named discount code. Codes are case-sensitive and matched
// exactly; at most one code applies per booking.
type Discount struct {
	ID        string
	Code      string
	Kind      pricing.DiscountKind
	Value     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing discount codes.
type Filter struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// ToPricing converts the registry entry into the pricing engine's input type.
func (d *Discount) ToPricing() *pricing.Discount {
	return &pricing.Discount{
		Code:  d.Code,
		Kind:  d.Kind,
		Value: d.Value,
	}
}
