package absence

type JustifyAbsenceRequest struct {
	ReasonCategory string `json:"reason_category" binding:"required"`
	Explanation    string `json:"explanation" binding:"required"`
}

type ReviewAbsenceRequest struct {
	Status      string `json:"status" binding:"required"`
	ReviewNotes string `json:"review_notes"`
}

type AbsenceResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	TeamID         string  `json:"team_id"`
	UserID         string  `json:"user_id"`
	AbsenceDate    string  `json:"absence_date"`
	Status         string  `json:"status"`
	ReasonCategory *string `json:"reason_category,omitempty"`
	Explanation    *string `json:"explanation,omitempty"`
	JustifiedAt    *string `json:"justified_at,omitempty"`
	ReviewedBy     *string `json:"reviewed_by,omitempty"`
	ReviewedAt     *string `json:"reviewed_at,omitempty"`
	ReviewNotes    *string `json:"review_notes,omitempty"`
}

// DetectionReport is the outcome of one worker's gap-scan inside a batch
// run. Failures are isolated per worker; a failed scan never aborts the
// rest of the batch.
type DetectionReport struct {
	UserID  string            `json:"user_id"`
	Created []AbsenceResponse `json:"created"`
	Error   string            `json:"error,omitempty"`
}

type StatusCountsResponse struct {
	PendingJustification int64 `json:"pending_justification"`
	Excused              int64 `json:"excused"`
	Unexcused            int64 `json:"unexcused"`
}
