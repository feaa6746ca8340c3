package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wondergroup-de/wonder-events-backend/internal/discount"
	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/request"
)

type DiscountResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Kind      string    `json:"kind"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDiscountResponse(d *discount.Discount) DiscountResponse {
	return DiscountResponse{
		ID:        d.ID,
		Code:      d.Code,
		Kind:      string(d.Kind),
		Value:     d.Value.String(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type CreateDiscountRequest struct {
	Code  string          `json:"code" binding:"required"`
	Kind  string          `json:"kind" binding:"required,oneof=percentage flat"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

type UpdateDiscountRequest struct {
	Code  *string          `json:"code"`
	Kind  *string          `json:"kind" binding:"omitempty,oneof=percentage flat"`
	Value *decimal.Decimal `json:"value"`
}

// ListDiscountsRequest defines query parameters for listing discount codes.
type ListDiscountsRequest struct {
	request.ListParams
	SortBy string `form:"sort_by" binding:"omitempty,oneof=code kind value created_at"`
}
