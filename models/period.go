package models

import (
	"fmt"
	"time"
)

// Default submission and pay clock times, minutes since midnight.
const (
	DefaultSubmissionTime = 13 * 60
	DefaultPayTime        = 9 * 60
)

// Period represents a payroll reporting window. Ordering is by starting date;
// (calendar_year, starting_date) is unique.
type Period struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	PeriodNo       int       `gorm:"not null" json:"period_no" validate:"min=1,max=12"`
	CalendarYear   int       `gorm:"not null;uniqueIndex:idx_periods_year_start" json:"calendar_year" validate:"min=2023,max=9999"`
	FiscalYear     string    `gorm:"not null;size:4" json:"fiscal_year" validate:"len=4"`
	StartingDate   time.Time `gorm:"not null;type:date;uniqueIndex:idx_periods_year_start" json:"starting_date"`
	ReportingDate  time.Time `gorm:"not null;type:date" json:"reporting_date"`
	SubmissionDate time.Time `gorm:"not null;type:date" json:"submission_date"`
	SubmissionTime int       `gorm:"not null;default:780" json:"submission_time"`
	PayDate        time.Time `gorm:"not null;type:date" json:"pay_date"`
	PayTime        int       `gorm:"not null;default:540" json:"pay_time"`
}

func (Period) TableName() string { return "periods" }

// ExpectedFiscalYear derives the "FYyy" label for a period starting in the
// given calendar year and month. The fiscal year rolls over in September: a
// September 2024 period belongs to FY25.
func ExpectedFiscalYear(calendarYear int, month time.Month) string {
	year := calendarYear
	if month >= time.September {
		year = calendarYear + 1
	}
	return fmt.Sprintf("FY%02d", year%100)
}
