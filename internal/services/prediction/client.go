package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fraudwatch/internal/models"
)

// Outcome classifies the result of an ML service call. Every non-OutcomeOK
// variant triggers the fallback scorer; keeping the variants explicit means
// a genuine programming error cannot be silently swallowed as "unavailable".
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeTimeout
	OutcomeNetworkError
	OutcomeBadStatus
	OutcomeBadResponse
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeNetworkError:
		return "network_error"
	case OutcomeBadStatus:
		return "bad_status"
	case OutcomeBadResponse:
		return "bad_response"
	}
	return "unknown"
}

// MLClient calls the remote fraud prediction model.
type MLClient struct {
	baseURL string
	client  *http.Client
}

// NewMLClient creates a client for the ML service with a hard per-call
// timeout so a hung model cannot stall ingestion.
func NewMLClient(baseURL string, timeout time.Duration) *MLClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MLClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Predict posts the transaction to the model and classifies the result.
func (c *MLClient) Predict(ctx context.Context, tx *models.Transaction) (*models.Prediction, Outcome, error) {
	body, err := json.Marshal(tx)
	if err != nil {
		return nil, OutcomeBadResponse, fmt.Errorf("failed to encode transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, OutcomeNetworkError, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, OutcomeTimeout, err
		}
		return nil, OutcomeNetworkError, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, OutcomeBadStatus, fmt.Errorf("ml service returned status %d", resp.StatusCode)
	}

	var pred models.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, OutcomeBadResponse, fmt.Errorf("failed to decode prediction: %w", err)
	}
	return &pred, OutcomeOK, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
