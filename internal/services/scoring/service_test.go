package scoring

import (
	"testing"
	"time"

	"fraudwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroJitter() float64 { return 0 }

func baseTransaction() *models.Transaction {
	return &models.Transaction{
		TransactionID:   "TXN1",
		Amount:          500,
		Category:        "grocery",
		Country:         "IN",
		Device:          models.DeviceDesktop,
		TransactionTime: "2024-03-15T12:00:00Z",
	}
}

func TestScore_Rules(t *testing.T) {
	svc := NewService(WithJitter(zeroJitter))

	tests := []struct {
		name        string
		mutate      func(tx *models.Transaction)
		wantScore   float64
		wantReasons []string
	}{
		{
			name:        "no rules fire",
			mutate:      func(tx *models.Transaction) {},
			wantScore:   0,
			wantReasons: []string{"Low risk transaction"},
		},
		{
			name:        "high amount",
			mutate:      func(tx *models.Transaction) { tx.Amount = 5001 },
			wantScore:   0.30,
			wantReasons: []string{"High transaction amount"},
		},
		{
			name:        "amount at threshold does not fire",
			mutate:      func(tx *models.Transaction) { tx.Amount = 5000 },
			wantScore:   0,
			wantReasons: []string{"Low risk transaction"},
		},
		{
			name:        "risky category is case-insensitive",
			mutate:      func(tx *models.Transaction) { tx.Category = "GaMbLiNg" },
			wantScore:   0.20,
			wantReasons: []string{"Risky merchant category"},
		},
		{
			name:        "electronics is risky",
			mutate:      func(tx *models.Transaction) { tx.Category = "electronics" },
			wantScore:   0.20,
			wantReasons: []string{"Risky merchant category"},
		},
		{
			name:        "foreign country",
			mutate:      func(tx *models.Transaction) { tx.Country = "US" },
			wantScore:   0.30,
			wantReasons: []string{"Foreign transaction"},
		},
		{
			name:        "late night hour",
			mutate:      func(tx *models.Transaction) { tx.TransactionTime = "2024-03-15T23:30:00Z" },
			wantScore:   0.10,
			wantReasons: []string{"Unusual transaction time"},
		},
		{
			name:        "early morning hour",
			mutate:      func(tx *models.Transaction) { tx.TransactionTime = "2024-03-15T05:59:00Z" },
			wantScore:   0.10,
			wantReasons: []string{"Unusual transaction time"},
		},
		{
			name:        "unparsable time skips the rule",
			mutate:      func(tx *models.Transaction) { tx.TransactionTime = "not-a-timestamp" },
			wantScore:   0,
			wantReasons: []string{"Low risk transaction"},
		},
		{
			name:        "mobile device",
			mutate:      func(tx *models.Transaction) { tx.Device = models.DeviceMobile },
			wantScore:   0.10,
			wantReasons: []string{"Mobile transaction"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := baseTransaction()
			tt.mutate(tx)

			pred := svc.Score(tx)

			assert.InDelta(t, tt.wantScore, pred.FraudProbability, 1e-9)
			assert.Equal(t, tt.wantReasons, pred.Reasons)
		})
	}
}

func TestScore_Invariants(t *testing.T) {
	svc := NewService()

	txs := []*models.Transaction{
		baseTransaction(),
		{TransactionID: "TXN2", Amount: 15000, Category: "gambling", Country: "NG", Device: "mobile"},
		{TransactionID: "TXN3", Amount: 7000, Country: "IN"},
	}

	for _, tx := range txs {
		for i := 0; i < 50; i++ {
			pred := svc.Score(tx)

			assert.Equal(t, pred.FraudProbability*100, pred.RiskScore,
				"risk score must be probability * 100 exactly")
			assert.Equal(t, pred.FraudProbability > 0.5, pred.IsFraud)
			assert.LessOrEqual(t, pred.FraudProbability, 0.95)
			assert.GreaterOrEqual(t, pred.FraudProbability, 0.0)
			assert.NotEmpty(t, pred.Reasons)
		}
	}
}

func TestScore_ReasonsStableAcrossCalls(t *testing.T) {
	// Jitter moves the number, never the reasons.
	svc := NewService()
	tx := &models.Transaction{
		TransactionID:   "TXN4",
		Amount:          9000,
		Category:        "electronics",
		Country:         "US",
		Device:          models.DeviceMobile,
		TransactionTime: "2024-03-15T03:00:00Z",
	}

	want := []string{
		"High transaction amount",
		"Risky merchant category",
		"Foreign transaction",
		"Unusual transaction time",
		"Mobile transaction",
	}

	for i := 0; i < 20; i++ {
		assert.Equal(t, want, svc.Score(tx).Reasons)
	}
}

func TestScore_MonotonicInAmount(t *testing.T) {
	svc := NewService(WithJitter(zeroJitter))

	small := baseTransaction()
	small.Amount = 100
	large := baseTransaction()
	large.Amount = 10000

	assert.GreaterOrEqual(t,
		svc.Score(large).FraudProbability,
		svc.Score(small).FraudProbability)
}

func TestScore_HighRiskScenario(t *testing.T) {
	// Amount, category, country and device all fire: 0.9 before jitter,
	// clamped at 0.95.
	svc := NewService()
	tx := &models.Transaction{
		TransactionID: "TXN5",
		Amount:        15000,
		Category:      "gambling",
		Country:       "NG",
		Device:        models.DeviceMobile,
	}

	pred := svc.Score(tx)

	require.GreaterOrEqual(t, pred.FraudProbability, 0.90)
	require.LessOrEqual(t, pred.FraudProbability, 0.95)
	assert.True(t, pred.IsFraud)
	assert.Equal(t, []string{
		"High transaction amount",
		"Risky merchant category",
		"Foreign transaction",
		"Mobile transaction",
	}, pred.Reasons)
}

func TestScore_LowRiskScenario(t *testing.T) {
	// Nothing fires; jitter tops out below 0.2 so the verdict can never
	// flip to fraud.
	svc := NewService()
	tx := &models.Transaction{
		TransactionID:   "TXN6",
		Amount:          500,
		Category:        "grocery",
		Country:         "IN",
		Device:          models.DeviceDesktop,
		TransactionTime: "2024-03-15T12:00:00Z",
	}

	for i := 0; i < 50; i++ {
		pred := svc.Score(tx)
		assert.False(t, pred.IsFraud)
		assert.Less(t, pred.FraudProbability, 0.2)
		assert.Equal(t, []string{"Low risk transaction"}, pred.Reasons)
	}
}

func TestScore_Timestamp(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := NewService(WithJitter(zeroJitter), WithClock(func() time.Time { return fixed }))

	pred := svc.Score(baseTransaction())
	assert.Equal(t, fixed, pred.Timestamp)
}
