package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wondergroup-de/wonder-events-backend/internal/catalog"
)

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func stockOf(n int32) *int32 {
	return &n
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint before", day(1), day(3), day(5), day(7), false},
		{"disjoint after", day(5), day(7), day(1), day(3), false},
		{"contained", day(12), day(14), day(10), day(15), true},
		{"partial overlap", day(1), day(6), day(5), day(7), true},
		{"identical", day(1), day(3), day(1), day(3), true},
		{"back to back half-open", day(1), day(3), day(3), day(5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	item := &catalog.Item{ID: "speaker", Name: "Speaker", Stock: stockOf(5)}

	// Existing confirmed booking: qty 3 over [Jan 10, Jan 15).
	ledger := []LedgerEntry{
		{Quantity: 3, StartTime: day(10), EndTime: day(15), Status: StatusOpen},
	}

	t.Run("overlapping request exceeding remaining stock", func(t *testing.T) {
		available, remaining := CheckAvailability(item, 3, day(12), day(14), ledger)
		assert.False(t, available)
		assert.EqualValues(t, 2, remaining)
	})

	t.Run("overlapping request within remaining stock", func(t *testing.T) {
		available, remaining := CheckAvailability(item, 2, day(12), day(14), ledger)
		assert.True(t, available)
		assert.EqualValues(t, 2, remaining)
	})

	t.Run("disjoint request sees full stock", func(t *testing.T) {
		available, remaining := CheckAvailability(item, 3, day(20), day(22), ledger)
		assert.True(t, available)
		assert.EqualValues(t, 5, remaining)
	})

	t.Run("request starting exactly at existing end does not conflict", func(t *testing.T) {
		available, remaining := CheckAvailability(item, 5, day(15), day(18), ledger)
		assert.True(t, available)
		assert.EqualValues(t, 5, remaining)
	})

	t.Run("completed bookings release their stock", func(t *testing.T) {
		returned := []LedgerEntry{
			{Quantity: 5, StartTime: day(10), EndTime: day(15), Status: StatusCompleted},
		}
		available, remaining := CheckAvailability(item, 5, day(12), day(14), returned)
		assert.True(t, available)
		assert.EqualValues(t, 5, remaining)
	})

	t.Run("multiple overlapping bookings accumulate", func(t *testing.T) {
		busy := []LedgerEntry{
			{Quantity: 2, StartTime: day(10), EndTime: day(13), Status: StatusOpen},
			{Quantity: 2, StartTime: day(12), EndTime: day(16), Status: StatusInProgress},
			{Quantity: 2, StartTime: day(20), EndTime: day(22), Status: StatusOpen},
		}
		available, remaining := CheckAvailability(item, 2, day(12), day(13), busy)
		assert.False(t, available)
		assert.EqualValues(t, 1, remaining)
	})

	t.Run("unbounded stock is always available", func(t *testing.T) {
		unbounded := &catalog.Item{ID: "cups", Name: "Cups"}
		available, remaining := CheckAvailability(unbounded, 1000, day(12), day(14), ledger)
		assert.True(t, available)
		assert.EqualValues(t, -1, remaining)
	})
}
