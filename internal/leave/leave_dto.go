package leave

type CreateLeaveRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type LeaveResponse struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	UserID    string  `json:"user_id"`
	LeaveType string  `json:"leave_type"`
	Status    string  `json:"status"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	TotalDays int     `json:"total_days"`
	Reason    string  `json:"reason"`
	DecidedBy *string `json:"decided_by,omitempty"`
	DecidedAt *string `json:"decided_at,omitempty"`
}

// LeaveStatus is the worker-dashboard view of leave state. Returning stays
// true for a short grace window after a leave ends, until the worker
// checks in again.
type LeaveStatus struct {
	OnLeave          bool           `json:"on_leave"`
	Returning        bool           `json:"returning"`
	CurrentException *LeaveResponse `json:"current_exception,omitempty"`
	LastException    *LeaveResponse `json:"last_exception,omitempty"`
}
