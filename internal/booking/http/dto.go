package http

import (
	"time"

	"github.com/wondergroup-de/wonder-events-backend/internal/booking"
	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/request"
	"github.com/wondergroup-de/wonder-events-backend/internal/pricing"
)

// CartLineBody is one cart entry in a quote or booking request.
type CartLineBody struct {
	Kind     string `json:"kind" binding:"required,oneof=item service"`
	RefID    string `json:"ref_id" binding:"required,uuid"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

// QuoteBookingRequest prices a cart without persisting anything.
type QuoteBookingRequest struct {
	Lines        []CartLineBody `json:"lines" binding:"required,dive"`
	StartTime    time.Time      `json:"start_time" binding:"required"`
	EndTime      time.Time      `json:"end_time" binding:"required"`
	DiscountCode string         `json:"discount_code"`
}

// Validate performs custom validation for QuoteBookingRequest.
func (r *QuoteBookingRequest) Validate() error {
	if !r.EndTime.After(r.StartTime) {
		return booking.ErrInvalidWindow
	}
	return nil
}

// CreateBookingRequest creates a booking with a frozen invoice.
type CreateBookingRequest struct {
	QuoteBookingRequest
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	Notes         string `json:"notes"`
}

// UpdateBookingRequest changes lifecycle status and notes only.
type UpdateBookingRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=open in_progress completed"`
	Notes  *string `json:"notes"`
}

// Validate performs custom validation for UpdateBookingRequest.
func (r *UpdateBookingRequest) Validate() error {
	return nil
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Status        string     `form:"status" binding:"omitempty,oneof=open in_progress completed"`
	Customer      string     `form:"customer"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status reference total"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.StartTimeFrom != nil && r.StartTimeTo != nil {
		if r.StartTimeFrom.After(*r.StartTimeTo) {
			return booking.ErrInvalidWindow
		}
	}
	return nil
}

// AvailabilityRequest defines query parameters for the advisory stock check.
type AvailabilityRequest struct {
	Quantity  int64     `form:"quantity,default=1" binding:"omitempty,min=1"`
	StartTime time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// InvoiceLineResponse is one invoice line with a presentation-rounded amount.
type InvoiceLineResponse struct {
	Kind        string `json:"kind"`
	RefID       string `json:"ref_id,omitempty"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	Amount      string `json:"amount"`
}

// QuoteResponse is the pricing preview for a cart.
type QuoteResponse struct {
	Lines           []InvoiceLineResponse `json:"lines"`
	Subtotal        string                `json:"subtotal"`
	DiscountCode    string                `json:"discount_code,omitempty"`
	DiscountAmount  string                `json:"discount_amount"`
	DiscountUnknown bool                  `json:"discount_unknown,omitempty"`
	DiscountClamped bool                  `json:"discount_clamped,omitempty"`
	Total           string                `json:"total"`
	TariffMode      string                `json:"tariff_mode"`
	TariffUnits     int64                 `json:"tariff_units"`
}

// NewQuoteResponse converts a pricing invoice to its API shape. Cart entries
// and invoice lines are index-aligned, so non-discount lines take their kind
// and ref from the cart. Amounts are rounded to two decimals here, at the
// presentation boundary.
func NewQuoteResponse(inv *pricing.Invoice, cart []CartLineBody, mode string, units int64) QuoteResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for i, l := range inv.Lines {
		line := InvoiceLineResponse{
			Kind:        string(booking.LineDiscount),
			Description: l.Description,
			Quantity:    l.Quantity,
			Amount:      l.Amount.StringFixed(2),
		}
		if !l.IsDiscount && i < len(cart) {
			line.Kind = cart[i].Kind
			line.RefID = cart[i].RefID
		}
		lines = append(lines, line)
	}
	return QuoteResponse{
		Lines:           lines,
		Subtotal:        inv.Subtotal.StringFixed(2),
		DiscountCode:    inv.DiscountCode,
		DiscountAmount:  inv.DiscountAmount.StringFixed(2),
		DiscountUnknown: inv.DiscountUnknown,
		DiscountClamped: inv.DiscountClamped,
		Total:           inv.Total.StringFixed(2),
		TariffMode:      mode,
		TariffUnits:     units,
	}
}

// BookingResponse is the API shape of a persisted booking.
type BookingResponse struct {
	ID             string                `json:"id"`
	Reference      string                `json:"reference"`
	CustomerName   string                `json:"customer_name"`
	CustomerEmail  string                `json:"customer_email,omitempty"`
	StartTime      time.Time             `json:"start_time"`
	EndTime        time.Time             `json:"end_time"`
	TariffMode     string                `json:"tariff_mode"`
	TariffUnits    int64                 `json:"tariff_units"`
	Lines          []InvoiceLineResponse `json:"lines"`
	Subtotal       string                `json:"subtotal"`
	DiscountCode   *string               `json:"discount_code,omitempty"`
	DiscountAmount string                `json:"discount_amount"`
	Total          string                `json:"total"`
	Status         string                `json:"status"`
	Notes          string                `json:"notes,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// NewBookingResponse converts a domain booking to its API shape.
func NewBookingResponse(b *booking.Booking) BookingResponse {
	lines := make([]InvoiceLineResponse, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, InvoiceLineResponse{
			Kind:        string(l.Kind),
			RefID:       l.RefID,
			Description: l.Description,
			Quantity:    l.Quantity,
			Amount:      l.Amount.StringFixed(2),
		})
	}
	return BookingResponse{
		ID:             b.ID,
		Reference:      b.Reference,
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		TariffMode:     b.TariffMode,
		TariffUnits:    b.TariffUnits,
		Lines:          lines,
		Subtotal:       b.Subtotal.StringFixed(2),
		DiscountCode:   b.DiscountCode,
		DiscountAmount: b.DiscountAmount.StringFixed(2),
		Total:          b.Total.StringFixed(2),
		Status:         string(b.Status),
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// AvailabilityResponse reports the advisory stock check result.
type AvailabilityResponse struct {
	Available bool  `json:"available"`
	Remaining int64 `json:"remaining"`
	Unbounded bool  `json:"unbounded"`
}
