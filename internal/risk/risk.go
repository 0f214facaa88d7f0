// Package risk implements the standalone tick-exposure score for a pet
// profile. It is a pure advisory calculation over fixed weight tables and
// has no dependency on stored sighting data.
package risk

import (
	"fmt"
	"math"
	"sort"
)

// Band is the qualitative label derived from a numeric score.
type Band string

const (
	BandLow    Band = "LOW"
	BandMedium Band = "MEDIUM"
	BandHigh   Band = "HIGH"
)

// Score bounds and band thresholds. A maximum-weight profile lands exactly
// on MaxScore; the clamp keeps the scale intact even if weights are ever
// reconfigured to overshoot.
const (
	MinScore = 0.0
	MaxScore = 100.0

	mediumThreshold = 40.0
	highThreshold   = 70.0
)

// Profile is the per-request input. All three categories are required;
// a missing value is simply an unknown one and fails the same validation.
type Profile struct {
	Lifestyle  string
	Coat       string
	RegionType string
}

// Assessment is the scoring output.
type Assessment struct {
	RiskFactor float64 `json:"riskFactor"`
	RiskLabel  Band    `json:"riskLabel"`
	RiskInfo   string  `json:"riskInfo"`
}

// ValidationError reports a profile field whose value is not in the weight
// table. Unknown values fail loudly instead of defaulting to zero weight,
// which would silently underestimate risk.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("unknown %s value %q (allowed: %v)", e.Field, e.Value, e.Allowed)
}

// Weights holds the per-category factor weights and their scale factors.
// It is built once at startup and treated as immutable configuration.
type Weights struct {
	Lifestyle map[string]float64
	Coat      map[string]float64
	Region    map[string]float64

	// Scale factors distribute the 0-100 range across the categories.
	LifestyleScale float64
	CoatScale      float64
	RegionScale    float64
}

// DefaultWeights returns the documented factor table: lifestyle dominates
// (up to 50 points), then coat (30) and region type (20).
func DefaultWeights() Weights {
	return Weights{
		Lifestyle:      map[string]float64{"indoor": 0.1, "mixed": 0.6, "outdoor": 1.0},
		Coat:           map[string]float64{"short": 0.1, "medium": 0.5, "long": 1.0},
		Region:         map[string]float64{"urban": 0.1, "suburban": 0.5, "rural": 1.0},
		LifestyleScale: 50,
		CoatScale:      30,
		RegionScale:    20,
	}
}

// Scorer computes bounded risk scores from a fixed weight table.
type Scorer struct {
	weights Weights
}

// NewScorer creates a Scorer. The weight table is copied by reference and
// must not be mutated afterwards.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score validates the profile against the weight tables and returns the
// clamped additive score plus its band. Identical profiles always yield
// identical assessments.
func (s *Scorer) Score(p Profile) (Assessment, error) {
	lifestyle, err := lookup("lifestyle", p.Lifestyle, s.weights.Lifestyle)
	if err != nil {
		return Assessment{}, err
	}
	coat, err := lookup("coat", p.Coat, s.weights.Coat)
	if err != nil {
		return Assessment{}, err
	}
	region, err := lookup("region_type", p.RegionType, s.weights.Region)
	if err != nil {
		return Assessment{}, err
	}

	score := lifestyle*s.weights.LifestyleScale +
		coat*s.weights.CoatScale +
		region*s.weights.RegionScale
	score = clamp(score, MinScore, MaxScore)
	score = math.Round(score*100) / 100

	band, info := classify(score)
	return Assessment{
		RiskFactor: score,
		RiskLabel:  band,
		RiskInfo:   info,
	}, nil
}

func lookup(field, value string, table map[string]float64) (float64, error) {
	if w, ok := table[value]; ok {
		return w, nil
	}
	allowed := make([]string, 0, len(table))
	for k := range table {
		allowed = append(allowed, k)
	}
	sort.Strings(allowed)
	return 0, &ValidationError{Field: field, Value: value, Allowed: allowed}
}

func classify(score float64) (Band, string) {
	switch {
	case score < mediumThreshold:
		return BandLow, "Low risk: standard tick prevention measures recommended."
	case score < highThreshold:
		return BandMedium, "Medium risk: enhanced tick prevention measures recommended."
	default:
		return BandHigh, "High risk: consult a veterinarian for comprehensive tick prevention."
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
