package validation

import (
	"testing"

	"fraudwatch/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTransactionValidation(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		valid  bool
	}{
		{"positive amount", 100.50, true},
		{"zero amount", 0, false},
		{"negative amount", -10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Transaction(&models.Transaction{Amount: tt.amount})

			assert.Equal(t, tt.valid, v.Valid())
			if !tt.valid {
				assert.NotEmpty(t, v.Message())
			}
		})
	}
}
