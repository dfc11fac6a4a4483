// Package readiness scores a daily wellness check-in.
package readiness

import (
	"fmt"
	"math"
	"net/http"

	"go-readiness/internal/shared/apperror"
)

const (
	StatusGreen  = "GREEN"
	StatusYellow = "YELLOW"
	StatusRed    = "RED"
)

const (
	greenThreshold  = 70
	yellowThreshold = 40
)

// Metrics are the four raw check-in values, each on a 1-10 scale.
type Metrics struct {
	Mood           int `json:"mood"`
	Stress         int `json:"stress"`
	Sleep          int `json:"sleep"`
	PhysicalHealth int `json:"physical_health"`
}

// Result is the derived score/status pair stored on the check-in.
type Result struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
}

// Calculate normalizes each metric to 0-100 (stress inverted, a low stress
// value is good), averages with equal weights and rounds. Out-of-range
// metrics are rejected, never clamped.
func Calculate(m Metrics) (Result, error) {
	if err := validate(m); err != nil {
		return Result{}, err
	}

	mood := float64(m.Mood) / 10 * 100
	stress := float64(10-m.Stress) / 10 * 100
	sleep := float64(m.Sleep) / 10 * 100
	physical := float64(m.PhysicalHealth) / 10 * 100

	score := int(math.Round((mood + stress + sleep + physical) / 4))

	return Result{Score: score, Status: StatusFor(score)}, nil
}

// StatusFor maps a 0-100 score to the tri-state readiness status.
func StatusFor(score int) string {
	switch {
	case score >= greenThreshold:
		return StatusGreen
	case score >= yellowThreshold:
		return StatusYellow
	default:
		return StatusRed
	}
}

func validate(m Metrics) error {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"mood", m.Mood},
		{"stress", m.Stress},
		{"sleep", m.Sleep},
		{"physical_health", m.PhysicalHealth},
	} {
		if f.value < 1 || f.value > 10 {
			return apperror.New(apperror.CodeInvalidInput,
				fmt.Sprintf("%s must be between 1 and 10", f.name),
				http.StatusBadRequest)
		}
	}
	return nil
}
