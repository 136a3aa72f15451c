package models

import "time"

// Alert statuses
const (
	AlertStatusNew           = "new"
	AlertStatusInvestigating = "investigating"
	AlertStatusResolved      = "resolved"
	AlertStatusFalsePositive = "false_positive"
)

// Alert flags a transaction that crossed the risk threshold. It carries a
// denormalized snapshot of the triggering transaction, frozen at creation;
// only its status moves afterwards.
type Alert struct {
	ID            string      `gorm:"primarykey" json:"id"`
	TransactionID string      `gorm:"index;not null" json:"transactionId"`
	RiskScore     float64     `json:"riskScore"`
	Amount        float64     `json:"amount"`
	Merchant      string      `json:"merchant"`
	Category      string      `json:"category"`
	City          string      `json:"city"`
	Country       string      `json:"country"`
	Device        string      `json:"device"`
	Status        string      `gorm:"not null;default:'new'" json:"status"`
	Reasons       StringList  `gorm:"type:jsonb" json:"reasons"`
	Prediction    *Prediction `gorm:"type:jsonb" json:"prediction,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
	UpdatedAt     *time.Time  `json:"updatedAt,omitempty"`
}

// ValidAlertStatus reports whether s is one of the recognized statuses.
func ValidAlertStatus(s string) bool {
	switch s {
	case AlertStatusNew, AlertStatusInvestigating, AlertStatusResolved, AlertStatusFalsePositive:
		return true
	}
	return false
}
