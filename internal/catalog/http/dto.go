package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wondergroup-de/wonder-events-backend/internal/catalog"
	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/request"
)

type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	HourlyPrice string    `json:"hourly_price"`
	DailyPrice  string    `json:"daily_price"`
	Stock       *int32    `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewItemResponse(it *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Category:    string(it.Category),
		HourlyPrice: it.HourlyPrice.StringFixed(2),
		DailyPrice:  it.DailyPrice.StringFixed(2),
		Stock:       it.Stock,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

type ServiceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	HourlyPrice string    `json:"hourly_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewServiceResponse(svc *catalog.ServiceItem) ServiceResponse {
	return ServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		HourlyPrice: svc.HourlyPrice.StringFixed(2),
		CreatedAt:   svc.CreatedAt,
		UpdatedAt:   svc.UpdatedAt,
	}
}

type CreateItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"omitempty,oneof=single package"`
	HourlyPrice decimal.Decimal `json:"hourly_price" binding:"required"`
	DailyPrice  decimal.Decimal `json:"daily_price" binding:"required"`
	Stock       *int32          `json:"stock" binding:"omitempty,min=1"`
}

// UpdateItemRequest patches an item. Setting clear_stock removes the stock
// limit and makes the item unbounded again.
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category" binding:"omitempty,oneof=single package"`
	HourlyPrice *decimal.Decimal `json:"hourly_price"`
	DailyPrice  *decimal.Decimal `json:"daily_price"`
	Stock       *int32           `json:"stock" binding:"omitempty,min=1"`
	ClearStock  bool             `json:"clear_stock"`
}

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	HourlyPrice decimal.Decimal `json:"hourly_price" binding:"required"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name"`
	HourlyPrice *decimal.Decimal `json:"hourly_price"`
}

// ListItemsRequest defines query parameters for listing inventory items.
type ListItemsRequest struct {
	request.ListParams
	Name     string `form:"name"`
	Category string `form:"category" binding:"omitempty,oneof=single package"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=name category hourly_price daily_price created_at"`
}

// ListServicesRequest defines query parameters for listing services.
type ListServicesRequest struct {
	request.ListParams
	Name   string `form:"name"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name hourly_price created_at"`
}
