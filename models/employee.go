package models

import (
	"time"
)

// Employee is one person tracked by the system. EmployeeID is the
// operator-facing badge number, stored uppercased; Email is stored
// lowercased so the unique indexes double as case-insensitive checks.
type Employee struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	EmployeeID  string       `gorm:"uniqueIndex;not null;size:50" json:"employee_id"`
	FullName    string       `gorm:"not null;size:100" json:"full_name"`
	Email       string       `gorm:"uniqueIndex;not null;size:254" json:"email"`
	Department  string       `gorm:"size:100;default:''" json:"department"`
	Attendances []Attendance `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE" json:"attendances,omitempty"`
}
