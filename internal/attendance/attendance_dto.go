package attendance

const (
	ActionLogin  = "LOGIN"
	ActionLogout = "LOGOUT"
)

// Coordinates are pointers so that a reading of exactly 0 passes the
// required check.
type SubmitRequest struct {
	EmployeeID string   `json:"employee_id" binding:"required,max=64"`
	Name       string   `json:"name" binding:"required,max=255"`
	Latitude   *float64 `json:"latitude" binding:"required"`
	Longitude  *float64 `json:"longitude" binding:"required"`
}

type SubmitResponse struct {
	Action      string   `json:"action"`
	State       string   `json:"state"`
	EmployeeID  string   `json:"employee_id"`
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	RecordedAt  string   `json:"recorded_at"`
	HoursWorked *float64 `json:"hours_worked,omitempty"`
	DistanceKm  float64  `json:"distance_km"`
}

// DailyAttendanceRow is one line of the admin report. Missing logout and
// hours are rendered as "-".
type DailyAttendanceRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LoginTime   string `json:"login_time"`
	LogoutTime  string `json:"logout_time"`
	HoursWorked string `json:"hours_worked"`
}

type DailyAttendanceQuery struct {
	Date  string `form:"date"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type EnrollmentResponse struct {
	URL string `json:"url"`
}
