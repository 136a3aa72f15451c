package models

// DashboardStats is the aggregate view over the transaction and alert
// stores, recomputed by a full scan on demand.
type DashboardStats struct {
	TotalTransactions    int     `json:"totalTransactions"`
	FraudTransactions    int     `json:"fraudTransactions"`
	HighRiskTransactions int     `json:"highRiskTransactions"`
	TotalAmount          float64 `json:"totalAmount"`
	FraudRate            float64 `json:"fraudRate"`
	ActiveAlerts         int     `json:"activeAlerts"`
}
