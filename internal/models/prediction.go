package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Prediction is the fraud-risk assessment attached to a transaction. The
// shape is identical whether it came from the ML service or the local
// fallback scorer.
type Prediction struct {
	TransactionID    string    `json:"transaction_id"`
	IsFraud          bool      `json:"is_fraud"`
	FraudProbability float64   `json:"fraud_probability"`
	RiskScore        float64   `json:"risk_score"`
	Reasons          []string  `json:"reasons"`
	Timestamp        time.Time `json:"timestamp"`
}

// Value implements the driver.Valuer interface for jsonb storage.
func (p Prediction) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface.
func (p *Prediction) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// StringList is a []string stored as a jsonb column.
type StringList []string

// Value implements the driver.Valuer interface.
func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface.
func (l *StringList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// MarshalJSON returns the JSON encoding, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// UnmarshalJSON sets the list from its JSON encoding.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if l == nil {
		return errors.New("nil pointer")
	}
	return json.Unmarshal(data, (*[]string)(l))
}
