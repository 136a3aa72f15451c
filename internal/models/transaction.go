package models

import (
	"time"
)

// Known device labels. The set is open; anything else is stored as-is.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
)

// Transaction is a single payment event submitted for fraud assessment.
// It is immutable after ingestion; the pipeline attaches the prediction
// and storage metadata exactly once.
type Transaction struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	TransactionID string  `gorm:"uniqueIndex;not null" json:"transaction_id"`
	UserID        string  `json:"user_id,omitempty"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Currency      string  `gorm:"default:'INR'" json:"currency,omitempty"`
	Merchant      string  `json:"merchant"`
	Category      string  `json:"category"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	// TransactionTime keeps the raw RFC3339 string from the caller. The
	// scorer parses it lazily and skips the time rule if it is unparsable,
	// so a bad timestamp never fails ingestion.
	TransactionTime string      `json:"transaction_time"`
	Device          string      `json:"device"`
	Prediction      *Prediction `gorm:"type:jsonb" json:"prediction,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// ParsedTime returns the transaction time if it parses as RFC3339
// (with or without sub-second precision) or a bare ISO timestamp.
func (t *Transaction) ParsedTime() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, t.TransactionTime); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
