package organization

import "time"

type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrganizationPatch lists the only mutable fields; nil means unchanged.
type OrganizationPatch struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=150"`
	LogoURL *string `json:"logo_url" binding:"omitempty,max=500"`
}

type DashboardStats struct {
	TotalEmployees       int64 `json:"total_employees"`
	ActiveEmployees      int64 `json:"active_employees"`
	Departments          int64 `json:"departments"`
	TodayAttendance      int64 `json:"today_attendance"`
	PendingLeaves        int64 `json:"pending_leaves"`
	AttendancePercentage int64 `json:"attendance_percentage"`
}
