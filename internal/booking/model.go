package booking

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidWindow     = apperror.New(http.StatusBadRequest, "booking end must be after start")
	ErrEmptyCart         = apperror.New(http.StatusBadRequest, "cart has no lines to price")
	ErrItemNotFound      = apperror.New(http.StatusNotFound, "inventory item not found")
	ErrServiceNotFound   = apperror.New(http.StatusNotFound, "service not found")
	ErrInvalidQuantity   = apperror.New(http.StatusBadRequest, "quantity must be positive")
	ErrInvalidLineKind   = apperror.New(http.StatusBadRequest, "cart line kind must be item or service")
	ErrInsufficientStock = apperror.New(http.StatusConflict, "not enough stock available for the requested period")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrCustomerRequired  = apperror.New(http.StatusBadRequest, "customer name is required")
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusCompleted
}

// LineKind identifies what a booking line refers to.
type LineKind string

const (
	LineItem     LineKind = "item"
	LineService  LineKind = "service"
	LineDiscount LineKind = "discount"
)

// CartLine is one entry of the caller-owned cart awaiting pricing. For items
// the quantity is a unit count; for services it is the number of billed units
// (typically hours).
type CartLine struct {
	Kind     LineKind
	RefID    string
	Quantity int64
}

// InvoiceLine is one frozen line of a booking's invoice snapshot. RefID is
// kept so availability scans can attribute quantities to inventory items; the
// description and amount are denormalized and survive catalog deletion.
type InvoiceLine struct {
	Kind        LineKind
	RefID       string
	Description string
	Quantity    int64
	Amount      decimal.Decimal
}

// Booking is the persisted aggregate: customer, window, frozen invoice and
// lifecycle status. The embedded invoice is an immutable historical record;
// later catalog or discount edits never change it.
type Booking struct {
	ID            string
	Reference     string
	CustomerName  string
	CustomerEmail string
	StartTime     time.Time
	EndTime       time.Time

	TariffMode  string
	TariffUnits int64

	Lines          []InvoiceLine
	Subtotal       decimal.Decimal
	DiscountCode   *string
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal

	Status    Status
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	Status        string
	Customer      string
	StartTimeFrom *time.Time
	StartTimeTo   *time.Time
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}
