package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReference(t *testing.T) {
	date := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		customer string
		want     string
	}{
		{"long name truncated", "Mustermann GmbH", "WE-260830-MUS"},
		{"lowercase upper-cased", "anna", "WE-260830-ANN"},
		{"exactly three characters", "Bob", "WE-260830-BOB"},
		{"short name space-padded", "Al", "WE-260830-AL "},
		{"single character", "X", "WE-260830-X  "},
		{"surrounding whitespace trimmed", "  Clara  ", "WE-260830-CLA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateReference(tt.customer, date))
		})
	}
}

func TestGenerateReferenceUsesDateOnly(t *testing.T) {
	morning := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 1, 2, 22, 45, 0, 0, time.UTC)

	assert.Equal(t, GenerateReference("Kunde", morning), GenerateReference("Kunde", evening))
}
