package booking

import (
	"time"

	"github.com/wondergroup-de/wonder-events-backend/internal/catalog"
)

// LedgerEntry is one existing reservation of an inventory item, as consulted
// by the availability check.
type LedgerEntry struct {
	Quantity  int64
	StartTime time.Time
	EndTime   time.Time
	Status    Status
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back bookings (one ending exactly when
// the other starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CheckAvailability determines whether the requested quantity of an item is
// free across [start, end), given the existing booking ledger for that item.
//
// Items without a stock count are unbounded and always available; remaining
// is reported as -1 for them. Completed bookings have returned their
// equipment and no longer count against stock.
//
// The check itself is advisory: the authoritative check runs inside the
// booking-create transaction, which holds a row lock on the item so
// check-then-reserve is atomic.
func CheckAvailability(item *catalog.Item, requested int64, start, end time.Time, ledger []LedgerEntry) (bool, int64) {
	if item.Stock == nil {
		return true, -1
	}

	var committed int64
	for _, e := range ledger {
		if e.Status == StatusCompleted {
			continue
		}
		if Overlaps(start, end, e.StartTime, e.EndTime) {
			committed += e.Quantity
		}
	}

	remaining := int64(*item.Stock) - committed
	return remaining >= requested, remaining
}
