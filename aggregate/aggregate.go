package aggregate

import (
	"gorm.io/gorm"

	"timecard/models"
)

// Engine computes per-user totals over payroll hours rows. All totals are
// integer minutes; a query matching no rows totals to 0.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// PeriodWorkedMinutes totals the derived worked minutes for one user in one
// period, vacation entries included.
func (e *Engine) PeriodWorkedMinutes(userID, periodID uint) (int64, error) {
	var total int64
	err := e.db.Model(&models.PayrollHours{}).
		Where("user_id = ? AND period_id = ?", userID, periodID).
		Select("COALESCE(SUM(minutes_worked), 0)").
		Scan(&total).Error
	return total, err
}

// FiscalYearVacationMinutes totals the vacation-flagged minutes for one user
// across every period labelled with the given fiscal year. excludeID, when
// non-zero, leaves that entry out so an edit does not double-count itself.
func (e *Engine) FiscalYearVacationMinutes(userID uint, fiscalYear string, excludeID uint) (int64, error) {
	q := e.db.Model(&models.PayrollHours{}).
		Joins("JOIN periods ON periods.id = payroll_hours.period_id").
		Where("payroll_hours.user_id = ? AND periods.fiscal_year = ? AND payroll_hours.is_vacation = ?",
			userID, fiscalYear, true)
	if excludeID != 0 {
		q = q.Where("payroll_hours.id <> ?", excludeID)
	}
	var total int64
	err := q.Select("COALESCE(SUM(payroll_hours.minutes_worked), 0)").Scan(&total).Error
	return total, err
}

// PeriodAdjustmentMinutes totals the signed adjustment minutes for one user in
// one period.
func (e *Engine) PeriodAdjustmentMinutes(userID, periodID uint) (int64, error) {
	var total int64
	err := e.db.Model(&models.PayrollHours{}).
		Where("user_id = ? AND period_id = ?", userID, periodID).
		Select("COALESCE(SUM(adjustment_mins), 0)").
		Scan(&total).Error
	return total, err
}

// AllSubmitted reports whether every entry for the user and period carries the
// employee-submitted flag. A period with no entries counts as submitted.
func (e *Engine) AllSubmitted(userID, periodID uint) (bool, error) {
	base := e.db.Model(&models.PayrollHours{}).
		Where("user_id = ? AND period_id = ?", userID, periodID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return false, err
	}
	if total == 0 {
		return true, nil
	}

	var submitted int64
	err := base.Session(&gorm.Session{}).
		Where("employee_submitted = ?", true).
		Count(&submitted).Error
	if err != nil {
		return false, err
	}
	return submitted == total, nil
}
