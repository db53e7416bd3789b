package models

import (
	"time"
)

// Operator is a back-office account that signs in to manage records.
type Operator struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"uniqueIndex;not null;size:100" json:"username"`
	FullName     string    `gorm:"not null;size:200" json:"full_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
}

func (o *Operator) DisplayName() string {
	if o.FullName != "" {
		return o.FullName
	}
	return o.Username
}
