// Package scoring implements the rule-based fallback risk scorer used when
// the ML prediction service is unreachable.
package scoring

import (
	"math/rand"
	"strings"
	"time"

	"fraudwatch/internal/models"
)

const (
	fraudThreshold = 0.5
	maxProbability = 0.95
	jitterSpan     = 0.2
)

// JitterFunc supplies a float in [0,1). Injected so tests can pin it to 0.
type JitterFunc func() float64

// rule is one additive risk factor. Rules run independently, in declaration
// order, and a rule that cannot read its field simply does not fire.
type rule struct {
	weight float64
	reason string
	fires  func(tx *models.Transaction) bool
}

var riskyCategories = map[string]bool{
	"gambling":    true,
	"electronics": true,
}

const homeCountry = "IN"

var rules = []rule{
	{0.30, "High transaction amount", func(tx *models.Transaction) bool {
		return tx.Amount > 5000
	}},
	{0.20, "Risky merchant category", func(tx *models.Transaction) bool {
		return riskyCategories[strings.ToLower(tx.Category)]
	}},
	{0.30, "Foreign transaction", func(tx *models.Transaction) bool {
		return tx.Country != homeCountry
	}},
	{0.10, "Unusual transaction time", func(tx *models.Transaction) bool {
		ts, ok := tx.ParsedTime()
		if !ok {
			return false
		}
		hour := ts.Hour()
		return hour < 6 || hour > 22
	}},
	{0.10, "Mobile transaction", func(tx *models.Transaction) bool {
		return tx.Device == models.DeviceMobile
	}},
}

// Service scores transactions with the additive rule set.
type Service struct {
	jitter JitterFunc
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithJitter overrides the randomness source.
func WithJitter(j JitterFunc) Option {
	return func(s *Service) { s.jitter = j }
}

// WithClock overrides the prediction timestamp clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new fallback scorer.
func NewService(opts ...Option) *Service {
	s := &Service{
		jitter: rand.Float64,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score evaluates every rule against the transaction and returns a
// prediction. It never fails: rules that cannot evaluate are skipped. The
// jitter term affects only the numeric score, never the reasons.
func (s *Service) Score(tx *models.Transaction) *models.Prediction {
	var probability float64
	var reasons []string

	for _, r := range rules {
		if r.fires(tx) {
			probability += r.weight
			reasons = append(reasons, r.reason)
		}
	}

	probability += s.jitter() * jitterSpan
	if probability > maxProbability {
		probability = maxProbability
	}

	if len(reasons) == 0 {
		reasons = []string{"Low risk transaction"}
	}

	return &models.Prediction{
		TransactionID:    tx.TransactionID,
		IsFraud:          probability > fraudThreshold,
		FraudProbability: probability,
		RiskScore:        probability * 100,
		Reasons:          reasons,
		Timestamp:        s.now(),
	}
}
