package summary

type SummaryResponse struct {
	TeamID            string   `json:"team_id"`
	CompanyID         string   `json:"company_id"`
	Date              string   `json:"date"`
	IsWorkDay         bool     `json:"is_work_day"`
	IsHoliday         bool     `json:"is_holiday"`
	TotalMembers      int      `json:"total_members"`
	OnLeaveCount      int      `json:"on_leave_count"`
	ExpectedToCheckIn int      `json:"expected_to_check_in"`
	CheckedInCount    int      `json:"checked_in_count"`
	NotCheckedInCount int      `json:"not_checked_in_count"`
	GreenCount        int      `json:"green_count"`
	YellowCount       int      `json:"yellow_count"`
	RedCount          int      `json:"red_count"`
	AvgReadinessScore *float64 `json:"avg_readiness_score"`
	ComplianceRate    *float64 `json:"compliance_rate"`
}
