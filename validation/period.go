package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"timecard/models"
)

// PeriodValidator enforces the structural and uniqueness rules on pay-period
// definitions. Checks run in a fixed order and stop at the first failure, so a
// bad starting date never cascades into spurious cross-field errors.
type PeriodValidator struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewPeriodValidator(db *gorm.DB) *PeriodValidator {
	return &PeriodValidator{db: db, validate: validator.New()}
}

// Validate checks a candidate period, new or edited. It returns an empty map
// on success; the caller must not persist a period that reported errors.
func (v *PeriodValidator) Validate(p *models.Period) FieldErrors {
	errs := FieldErrors{}

	if err := v.validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				switch fe.Field() {
				case "PeriodNo":
					errs.Add("period_no", CodeInvalidPeriodNo, "period no must be between 1 and 12")
				case "CalendarYear":
					errs.Add("calendar_year", CodeInvalidDate, "calendar year must be 2023 or later")
				case "FiscalYear":
					errs.Add("fiscal_year", CodeInvalidDate, "fiscal year must be in the format FYyy")
				}
			}
		}
		if errs.HasErrors() {
			return errs
		}
	}

	if p.StartingDate.Day() != 1 {
		errs.Add("starting_date", CodeInvalidDate, "starting date must begin on the 1st day of the month")
		return errs
	}

	if p.PeriodNo != int(p.StartingDate.Month()) {
		errs.Add("period_no", CodeInvalidPeriodNo, "period no must be the same as the starting date month")
		return errs
	}

	dup := v.db.Model(&models.Period{}).
		Where("calendar_year = ? AND starting_date = ?", p.CalendarYear, p.StartingDate)
	if p.ID != 0 {
		dup = dup.Where("id <> ?", p.ID)
	}
	var count int64
	if err := dup.Count(&count).Error; err != nil {
		errs.Add("starting_date", CodeInvalidDate, "could not verify the period is unique")
		return errs
	}
	if count > 0 {
		msg := "calendar year and starting date duplicate an existing period"
		errs.Add("calendar_year", CodeDuplicateEntry, msg)
		errs.Add("starting_date", CodeDuplicateEntry, msg)
		return errs
	}

	if want := models.ExpectedFiscalYear(p.CalendarYear, p.StartingDate.Month()); p.FiscalYear != want {
		msg := fmt.Sprintf("fiscal year must be %s for a period starting in %s %d", want, p.StartingDate.Month(), p.CalendarYear)
		errs.Add("calendar_year", CodeInvalidDate, msg)
		errs.Add("fiscal_year", CodeInvalidDate, msg)
		return errs
	}

	if p.StartingDate.Year() != p.CalendarYear {
		errs.Add("calendar_year", CodeInvalidDate, "starting date year must match the calendar year")
		return errs
	}

	if p.ReportingDate.Year() != p.StartingDate.Year() {
		errs.Add("reporting_date", CodeInvalidDate, "reporting date and starting date must be in the same year")
		return errs
	}

	if p.SubmissionDate.Before(p.ReportingDate) {
		errs.Add("submission_date", CodeInvalidDate, "submission date must be on or after the reporting date")
		return errs
	}

	if p.PayDate.Before(p.SubmissionDate) {
		errs.Add("pay_date", CodeInvalidDate, "pay date must be on or after the submission date")
		return errs
	}

	return errs
}
