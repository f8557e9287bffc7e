package models

import (
	"time"

	"gorm.io/gorm"
)

// PayrollHours is one worked/vacation/adjustment time record for an employee
// within a period. Starting and ending times are minutes since midnight on a
// 5-minute grid; MinutesWorked is derived, never entered.
type PayrollHours struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	PeriodID           uint           `gorm:"not null;index" json:"period_id"`
	Period             Period         `gorm:"foreignKey:PeriodID" json:"period,omitempty"`
	UserID             uint           `gorm:"not null;index" json:"user_id"`
	User               ActiveUser     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DateWorked         time.Time      `gorm:"not null;type:date" json:"date_worked"`
	StartingTime       int            `gorm:"not null" json:"starting_time"`
	EndingTime         int            `gorm:"not null" json:"ending_time"`
	MinutesWorked      int            `gorm:"not null" json:"minutes_worked"`
	IsVacation         bool           `gorm:"default:false" json:"is_vacation"`
	AdjustmentMins     int            `gorm:"not null;default:0" json:"adjustment_mins"`
	AdjustmentApproved bool           `gorm:"default:false" json:"adjustment_approved"`
	EmployeeSubmitted  bool           `gorm:"default:false" json:"employee_submitted"`
}

func (PayrollHours) TableName() string { return "payroll_hours" }

// Duration is the wall-clock length of the entry in minutes.
func (ph *PayrollHours) Duration() int {
	return ph.EndingTime - ph.StartingTime
}

// BeforeSave recomputes the derived minutes on every write.
func (ph *PayrollHours) BeforeSave(tx *gorm.DB) error {
	ph.MinutesWorked = ph.Duration()
	return nil
}
