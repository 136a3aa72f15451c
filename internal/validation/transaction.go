package validation

import (
	"fraudwatch/internal/models"
)

// Transaction validates an inbound transaction payload. Amount is the only
// hard requirement; everything else is advisory and consumed best-effort by
// the scoring rules.
func (v *Validator) Transaction(tx *models.Transaction) {
	v.Required("amount", tx.Amount)
	v.Positive("amount", tx.Amount)
}
