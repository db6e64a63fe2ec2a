package events

import "time"

const AttendanceRecordedTopic = "hr.attendance.recorded.v1"

const (
	AttendanceLoginRecorded  = "attendance.login_recorded"
	AttendanceLogoutRecorded = "attendance.logout_recorded"
)

type AttendanceRecordedEvent struct {
	EventType   string     `json:"event_type"`
	RequestID   string     `json:"request_id,omitempty"`
	EmployeeID  string     `json:"employee_id"`
	Name        string     `json:"name"`
	Date        string     `json:"date"`
	LoginTime   time.Time  `json:"login_time"`
	LogoutTime  *time.Time `json:"logout_time,omitempty"`
	HoursWorked *float64   `json:"hours_worked,omitempty"`
	DistanceKm  float64    `json:"distance_km"`
	OccurredAt  time.Time  `json:"occurred_at"`
}
