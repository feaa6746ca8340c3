package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart has no lines to price")

// DiscountKind distinguishes percentage codes from flat-amount codes.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFlat       DiscountKind = "flat"
)

// Discount is a resolved discount code from the registry.
type Discount struct {
	Code  string
	Kind  DiscountKind
	Value decimal.Decimal
}

// LineInput is one cart entry resolved against the catalog.
//
// Equipment lines carry both tariff rates and are scaled by the window
// classification. Flat-rate lines (services such as setup or delivery) are
// always charged quantity times the hourly rate, regardless of how long the
// booking runs; they are sold as fixed labor units, not tariff-scaled rentals.
type LineInput struct {
	Description string
	Quantity    int64
	HourlyRate  decimal.Decimal
	DailyRate   decimal.Decimal
	FlatRate    bool
}

// InvoiceLine is one computed line of an invoice. The discount line, when
// present, is always last and carries a negative amount.
type InvoiceLine struct {
	Description string
	Quantity    int64
	Amount      decimal.Decimal
	IsDiscount  bool
}

// Invoice is the itemized pricing result. Amounts keep full precision;
// two-decimal rounding happens at the presentation boundary only.
type Invoice struct {
	Lines    []InvoiceLine
	Subtotal decimal.Decimal

	// DiscountCode is the applied code, empty when no discount was applied.
	DiscountCode   string
	DiscountAmount decimal.Decimal

	// DiscountUnknown is set when a code was supplied but not found in the
	// registry. The code is ignored rather than rejected; callers that want
	// strict validation can check this flag.
	DiscountUnknown bool

	// DiscountClamped is set when a flat discount exceeded the subtotal and
	// was reduced so the total never goes negative.
	DiscountClamped bool

	Total decimal.Decimal
}

// Price computes an itemized invoice for the cart under the given window
// classification, applying at most one discount.
//
// Each cart entry produces exactly one invoice line in insertion order;
// duplicate entries for the same catalog reference are not merged. The
// subtotal is computed strictly before the discount is subtracted. A non-nil
// discount must be the registry entry for code; passing code with a nil
// discount marks the invoice as DiscountUnknown and applies nothing.
//
// Price is a pure function: identical inputs always yield identical invoices.
func Price(lines []LineInput, cls Classification, code string, discount *Discount) (*Invoice, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	inv := &Invoice{
		Lines:          make([]InvoiceLine, 0, len(lines)+1),
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
	}

	units := decimal.NewFromInt(cls.Units)
	for _, l := range lines {
		qty := decimal.NewFromInt(l.Quantity)

		var amount decimal.Decimal
		if l.FlatRate {
			amount = qty.Mul(l.HourlyRate)
		} else {
			rate := l.DailyRate
			if cls.Mode == ModeHourly {
				rate = l.HourlyRate
			}
			amount = qty.Mul(rate).Mul(units)
		}

		inv.Lines = append(inv.Lines, InvoiceLine{
			Description: l.Description,
			Quantity:    l.Quantity,
			Amount:      amount,
		})
		inv.Subtotal = inv.Subtotal.Add(amount)
	}

	if code != "" {
		if discount == nil {
			inv.DiscountUnknown = true
		} else {
			var off decimal.Decimal
			switch discount.Kind {
			case DiscountPercentage:
				off = inv.Subtotal.Mul(discount.Value).Div(decimal.NewFromInt(100))
			default:
				off = discount.Value
			}
			if off.GreaterThan(inv.Subtotal) {
				off = inv.Subtotal
				inv.DiscountClamped = true
			}

			inv.DiscountCode = discount.Code
			inv.DiscountAmount = off
			inv.Lines = append(inv.Lines, InvoiceLine{
				Description: fmt.Sprintf("Discount (%s)", discount.Code),
				Quantity:    1,
				Amount:      off.Neg(),
				IsDiscount:  true,
			})
		}
	}

	inv.Total = inv.Subtotal.Sub(inv.DiscountAmount)
	return inv, nil
}
