package models

import (
	"time"

	"gorm.io/gorm"
)

type ActiveUser struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Username           string         `gorm:"uniqueIndex;not null;size:100" json:"username"`
	FullName           string         `gorm:"not null;size:200" json:"full_name"`
	Email              string         `gorm:"size:200" json:"email"`
	PhoneNumber        string         `gorm:"uniqueIndex;not null;size:31" json:"phone_number"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	StartDate          time.Time      `gorm:"not null;type:date" json:"start_date"`
	EndDate            *time.Time     `gorm:"type:date" json:"end_date"`
	VacationHours      int            `gorm:"not null;default:0" json:"vacation_hours"`
	IsStaff            bool           `gorm:"default:false" json:"is_staff"`
	IsSuperuser        bool           `gorm:"default:false" json:"is_superuser"`
	MustChangePassword bool           `gorm:"default:true" json:"must_change_password"`
	Hours              []PayrollHours `gorm:"foreignKey:UserID" json:"hours,omitempty"`
}

func (ActiveUser) TableName() string { return "active_users" }

func (u *ActiveUser) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u *ActiveUser) IsPrivileged() bool {
	return u.IsStaff || u.IsSuperuser
}

func (u *ActiveUser) CanManageHoursFor(userID uint) bool {
	if u.IsPrivileged() {
		return true
	}
	return u.ID == userID
}

func (u *ActiveUser) CanManagePeriods() bool {
	return u.IsPrivileged()
}

func (u *ActiveUser) CanManageUsers() bool {
	return u.IsPrivileged()
}

// ActiveOn reports whether the employment date range covers the given day.
func (u *ActiveUser) ActiveOn(day time.Time) bool {
	if day.Before(u.StartDate) {
		return false
	}
	return u.EndDate == nil || !day.After(*u.EndDate)
}
