package grading

// MemberGrade is one worker's result over the evaluation window. Score
// and Letter are nil while the worker is onboarding (fewer than
// MinSampleCheckins check-ins in the window).
type MemberGrade struct {
	UserID         string   `json:"user_id"`
	FullName       string   `json:"full_name"`
	CheckinCount   int      `json:"checkin_count"`
	Onboarding     bool     `json:"onboarding"`
	AvgReadiness   *float64 `json:"avg_readiness"`
	ComplianceRate *float64 `json:"compliance_rate"`
	Score          *int     `json:"score"`
	Letter         *string  `json:"letter"`
}

type TeamGradeResponse struct {
	TeamID         string        `json:"team_id"`
	FromDate       string        `json:"from_date"`
	ToDate         string        `json:"to_date"`
	AvgReadiness   *float64      `json:"avg_readiness"`
	ComplianceRate *float64      `json:"compliance_rate"`
	Score          *int          `json:"score"`
	Letter         *string       `json:"letter"`
	Members        []MemberGrade `json:"members"`
	OnboardingIDs  []string      `json:"onboarding_ids"`
}
