// Package grading turns readiness and attendance compliance into letter
// grades over an evaluation window.
package grading

import "math"

// MinSampleCheckins is the minimum number of check-ins a member needs in
// the window before their readiness joins a team average. Members below
// it are reported as onboarding, never averaged in as zero.
const MinSampleCheckins = 3

const (
	readinessWeight  = 0.60
	complianceWeight = 0.40
)

var bands = []struct {
	min    int
	letter string
}{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// Score combines average readiness and compliance rate, both on a 0-100
// scale, into a single 0-100 grade score.
func Score(avgReadiness, complianceRate float64) int {
	return int(math.Round(avgReadiness*readinessWeight + complianceRate*complianceWeight))
}

// Letter maps a grade score to the 13-band letter scale.
func Letter(score int) string {
	for _, b := range bands {
		if score >= b.min {
			return b.letter
		}
	}
	return "F"
}
