package booking

import (
	"fmt"
	"strings"
	"time"
)

// GenerateReference builds the base booking reference in the fixed-width
// company format WE-YYMMDD-XXX, where XXX is the customer name's first three
// characters, upper-cased and space-padded or truncated to exactly three.
//
// The base alone is not unique: two bookings on the same day for customers
// sharing a name prefix collide. The repository resolves collisions by
// appending a numeric sequence suffix inside the create transaction.
func GenerateReference(customerName string, date time.Time) string {
	name := strings.ToUpper(strings.TrimSpace(customerName))

	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	prefix := string(runes)
	if pad := 3 - len(runes); pad > 0 {
		prefix += strings.Repeat(" ", pad)
	}

	return fmt.Sprintf("WE-%s-%s", date.Format("060102"), prefix)
}
