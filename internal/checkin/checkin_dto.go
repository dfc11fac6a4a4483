package checkin

type SubmitCheckinRequest struct {
	Mood           int `json:"mood" binding:"required"`
	Stress         int `json:"stress" binding:"required"`
	Sleep          int `json:"sleep" binding:"required"`
	PhysicalHealth int `json:"physical_health" binding:"required"`
}

type CheckinResponse struct {
	ID              string `json:"id"`
	CompanyID       string `json:"company_id"`
	UserID          string `json:"user_id"`
	CheckinDate     string `json:"checkin_date"`
	Mood            int    `json:"mood"`
	Stress          int    `json:"stress"`
	Sleep           int    `json:"sleep"`
	PhysicalHealth  int    `json:"physical_health"`
	ReadinessScore  int    `json:"readiness_score"`
	ReadinessStatus string `json:"readiness_status"`
	CreatedAt       string `json:"created_at"`
}

// AuditResponse compares the stored readiness pair against a fresh
// recomputation from the raw metrics. The stored values are never mutated.
type AuditResponse struct {
	CheckinID       string `json:"checkin_id"`
	StoredScore     int    `json:"stored_score"`
	StoredStatus    string `json:"stored_status"`
	RecomputedScore int    `json:"recomputed_score"`
	RecomputedState string `json:"recomputed_status"`
	Matches         bool   `json:"matches"`
}
