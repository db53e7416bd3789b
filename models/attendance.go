package models

import (
	"time"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Attendance is one present/absent mark for one employee on one date.
// The composite unique index allows a single record per employee per day.
type Attendance struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	EmployeeID uint             `gorm:"not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Employee   Employee         `gorm:"belongsTo;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	Date       time.Time        `gorm:"not null;type:date;uniqueIndex:idx_attendance_employee_date" json:"date"`
	Status     AttendanceStatus `gorm:"not null;size:10;default:present" json:"status"`
}

// AttendanceFilter narrows a listing; nil fields impose no constraint.
// Date bounds are inclusive.
type AttendanceFilter struct {
	EmployeeID *uint
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *AttendanceStatus
}
