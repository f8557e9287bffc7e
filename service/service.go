// Package service persists validated records. Each save runs the validator and
// the write inside one transaction so the overlap and uniqueness checks cannot
// be split from the insert they guard.
package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"timecard/models"
	"timecard/validation"
)

var errRejected = errors.New("validation rejected the record")

// SaveHours validates entry against its siblings and, when clean, upserts it.
// The returned field errors are non-empty exactly when nothing was written.
func SaveHours(db *gorm.DB, entry *models.PayrollHours, owner *models.ActiveUser) (validation.FieldErrors, error) {
	return saveHoursAt(db, entry, owner, time.Now)
}

func saveHoursAt(db *gorm.DB, entry *models.PayrollHours, owner *models.ActiveUser, now func() time.Time) (validation.FieldErrors, error) {
	var ferrs validation.FieldErrors
	err := db.Transaction(func(tx *gorm.DB) error {
		ferrs = validation.NewHoursValidator(tx).WithClock(now).Validate(entry, owner)
		if ferrs.HasErrors() {
			return errRejected
		}
		return tx.Save(entry).Error
	})
	if errors.Is(err, errRejected) {
		return ferrs, nil
	}
	if err != nil {
		return nil, err
	}
	return validation.FieldErrors{}, nil
}

// SavePeriod validates a period definition and, when clean, upserts it. The
// composite unique index on (calendar_year, starting_date) backstops the
// duplicate check inside the same transaction.
func SavePeriod(db *gorm.DB, period *models.Period) (validation.FieldErrors, error) {
	var ferrs validation.FieldErrors
	err := db.Transaction(func(tx *gorm.DB) error {
		ferrs = validation.NewPeriodValidator(tx).Validate(period)
		if ferrs.HasErrors() {
			return errRejected
		}
		return tx.Save(period).Error
	})
	if errors.Is(err, errRejected) {
		return ferrs, nil
	}
	if err != nil {
		return nil, err
	}
	return validation.FieldErrors{}, nil
}

// SubmitAllHours marks every entry for the user and period as submitted.
func SubmitAllHours(db *gorm.DB, userID, periodID uint) error {
	return db.Model(&models.PayrollHours{}).
		Where("user_id = ? AND period_id = ?", userID, periodID).
		Update("employee_submitted", true).Error
}
