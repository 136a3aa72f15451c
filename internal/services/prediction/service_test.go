package prediction

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fraudwatch/internal/models"
	"fraudwatch/internal/services/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTransaction() *models.Transaction {
	return &models.Transaction{
		TransactionID: "TXN1",
		Amount:        500,
		Category:      "grocery",
		Country:       "IN",
		Device:        models.DeviceDesktop,
	}
}

func TestPredict_UsesModelWhenHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transaction_id":"TXN1","is_fraud":true,"fraud_probability":0.3,"risk_score":30,"reasons":["model says so"]}`))
	}))
	defer srv.Close()

	svc := NewService(NewMLClient(srv.URL, time.Second), scoring.NewService())
	pred, source := svc.Predict(context.Background(), testTransaction())

	assert.Equal(t, SourceModel, source)
	// The remote model's verdict is passed through untouched, even when its
	// threshold disagrees with the fallback's.
	assert.True(t, pred.IsFraud)
	assert.Equal(t, float64(30), pred.RiskScore)
	assert.Equal(t, []string{"model says so"}, pred.Reasons)
}

func TestPredict_FallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "5xx response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "slow model",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
				w.Write([]byte(`{}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			svc := NewService(
				NewMLClient(srv.URL, 50*time.Millisecond),
				scoring.NewService(scoring.WithJitter(func() float64 { return 0 })),
			)

			pred, source := svc.Predict(context.Background(), testTransaction())

			assert.Equal(t, SourceFallback, source)
			require.NotNil(t, pred)
			assert.Equal(t, "TXN1", pred.TransactionID)
			assert.Equal(t, []string{"Low risk transaction"}, pred.Reasons)
		})
	}
}

func TestPredict_FallsBackOnConnectionRefused(t *testing.T) {
	// Point at a server that is already gone.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	svc := NewService(NewMLClient(url, time.Second), scoring.NewService())
	pred, source := svc.Predict(context.Background(), testTransaction())

	assert.Equal(t, SourceFallback, source)
	assert.NotNil(t, pred)
}

func TestPredict_NoClientConfigured(t *testing.T) {
	svc := NewService(nil, scoring.NewService())
	pred, source := svc.Predict(context.Background(), testTransaction())

	assert.Equal(t, SourceFallback, source)
	assert.NotNil(t, pred)
}
