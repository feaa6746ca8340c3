package catalog

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/apperror"
)

var (
	ErrItemNotFound    = apperror.New(http.StatusNotFound, "inventory item not found")
	ErrServiceNotFound = apperror.New(http.StatusNotFound, "service not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrNegativePrice   = apperror.New(http.StatusBadRequest, "price cannot be negative")
	ErrInvalidStock    = apperror.New(http.StatusBadRequest, "stock must be positive when set")
	ErrInvalidCategory = apperror.New(http.StatusBadRequest, "invalid item category")
)

// Category distinguishes single rental items from bundled packages.
type Category string

const (
	CategorySingle  Category = "single"
	CategoryPackage Category = "package"
)

// ValidCategories lists the accepted item categories.
var ValidCategories = []Category{CategorySingle, CategoryPackage}

// Item is a rentable piece of equipment. A nil Stock means the item is
// unbounded (e.g., consumables restocked on demand) and never blocks a
// booking.
type Item struct {
	ID          string
	Name        string
	Category    Category
	HourlyPrice decimal.Decimal
	DailyPrice  decimal.Decimal
	Stock       *int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ServiceItem is a fixed-price service such as setup, delivery or staffing.
// Services have no stock constraint and are always available.
type ServiceItem struct {
	ID          string
	Name        string
	HourlyPrice decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemFilter defines parameters for listing inventory items.
type ItemFilter struct {
	Name      string
	Category  string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// ServiceFilter defines parameters for listing services.
type ServiceFilter struct {
	Name      string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
