package discount

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wondergroup-de/wonder-events-backend/internal/pricing"
)

type fakeRepo struct {
	byID   map[string]*Discount
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*Discount)}
}

func (f *fakeRepo) Create(_ context.Context, d *Discount) error {
	for _, existing := range f.byID {
		if existing.Code == d.Code {
			return ErrCodeTaken
		}
	}
	f.nextID++
	d.ID = fmt.Sprintf("disc-%d", f.nextID)
	f.byID[d.ID] = d
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Discount, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) GetByCode(_ context.Context, code string) (*Discount, error) {
	for _, d := range f.byID {
		if d.Code == code {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(_ context.Context, _ Filter) ([]*Discount, int, error) {
	var discounts []*Discount
	for _, d := range f.byID {
		discounts = append(discounts, d)
	}
	return discounts, len(discounts), nil
}

func (f *fakeRepo) Update(_ context.Context, d *Discount) error {
	if _, ok := f.byID[d.ID]; !ok {
		return ErrNotFound
	}
	f.byID[d.ID] = d
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			"empty code",
			CreateRequest{Code: "  ", Kind: pricing.DiscountPercentage, Value: decimal.NewFromInt(10)},
			ErrEmptyCode,
		},
		{
			"unknown kind",
			CreateRequest{Code: "X", Kind: "bogus", Value: decimal.NewFromInt(10)},
			ErrInvalidKind,
		},
		{
			"zero value",
			CreateRequest{Code: "X", Kind: pricing.DiscountFlat, Value: decimal.Zero},
			ErrInvalidValue,
		},
		{
			"percentage above 100",
			CreateRequest{Code: "X", Kind: pricing.DiscountPercentage, Value: decimal.NewFromInt(101)},
			ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateDuplicateCode(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Code: "TEAM10", Kind: pricing.DiscountPercentage, Value: decimal.NewFromInt(10)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Code: "TEAM10", Kind: pricing.DiscountFlat, Value: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestGetByCodeExactMatch(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Code: "TEAM10", Kind: pricing.DiscountPercentage, Value: decimal.NewFromInt(10)})
	require.NoError(t, err)

	// Codes are case-sensitive and matched exactly.
	_, err = svc.GetByCode(ctx, "team10")
	assert.ErrorIs(t, err, ErrNotFound)

	d, err := svc.GetByCode(ctx, "TEAM10")
	require.NoError(t, err)
	assert.Equal(t, "TEAM10", d.Code)
}

func TestUpdateRevalidates(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	d, err := svc.Create(ctx, CreateRequest{Code: "TEAM10", Kind: pricing.DiscountPercentage, Value: decimal.NewFromInt(10)})
	require.NoError(t, err)

	// Raising a percentage past 100 must fail even though the kind is untouched.
	tooHigh := decimal.NewFromInt(150)
	_, err = svc.Update(ctx, d.ID, UpdateRequest{Value: &tooHigh})
	assert.ErrorIs(t, err, ErrInvalidValue)

	// The same value is fine for a flat discount.
	flat := pricing.DiscountFlat
	updated, err := svc.Update(ctx, d.ID, UpdateRequest{Kind: &flat, Value: &tooHigh})
	require.NoError(t, err)
	assert.Equal(t, pricing.DiscountFlat, updated.Kind)
}

func TestToPricing(t *testing.T) {
	d := &Discount{Code: "TEAM10", Kind: pricing.DiscountPercentage, Value: decimal.NewFromInt(10)}

	p := d.ToPricing()
	assert.Equal(t, "TEAM10", p.Code)
	assert.Equal(t, pricing.DiscountPercentage, p.Kind)
	assert.True(t, p.Value.Equal(decimal.NewFromInt(10)))
}
