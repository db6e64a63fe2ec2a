package attendance

import (
	"time"

	"go-geoattend/internal/roster"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "2006-01-02 15:04:05"
)

// Record is one ledger row: at most one per employee per day.
type Record struct {
	ID          uint       `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID  string     `gorm:"column:employee_id;type:varchar(64);not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Name        string     `gorm:"column:name;type:varchar(255);not null"`
	Date        string     `gorm:"column:attendance_date;type:varchar(10);not null;uniqueIndex:uq_attendance_employee_date,priority:2;index:idx_attendance_date"`
	LoginTime   time.Time  `gorm:"column:login_time;not null"`
	LogoutTime  *time.Time `gorm:"column:logout_time"`
	HoursWorked *float64   `gorm:"column:hours_worked"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`

	Employee *roster.Identity `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (Record) TableName() string {
	return "attendance"
}
