package validation

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"timecard/aggregate"
	"timecard/models"
)

const minutesPerDay = 24 * 60

// HoursValidator enforces the temporal and budget rules on a single payroll
// hours entry. It reads sibling entries and the owning user's vacation
// allotment, but never writes; persisting a validated entry is the caller's
// job (see the service package).
type HoursValidator struct {
	db  *gorm.DB
	agg *aggregate.Engine
	now func() time.Time
}

func NewHoursValidator(db *gorm.DB) *HoursValidator {
	return &HoursValidator{db: db, agg: aggregate.NewEngine(db), now: time.Now}
}

// WithClock overrides the clock used to resolve a missing period reference.
func (v *HoursValidator) WithClock(now func() time.Time) *HoursValidator {
	v.now = now
	return v
}

// Validate checks a candidate entry owned by owner. When editing, entry.ID is
// set and the entry excludes itself from the overlap and budget queries. On
// success the entry's period reference is resolved and the map is empty.
func (v *HoursValidator) Validate(entry *models.PayrollHours, owner *models.ActiveUser) FieldErrors {
	errs := FieldErrors{}

	period, ok := v.resolvePeriod(entry, errs)
	if !ok {
		return errs
	}

	if entry.StartingTime < 0 || entry.StartingTime >= minutesPerDay {
		errs.Add("starting_time", CodeInvalidTime, "starting time is not a valid clock time")
	} else if entry.StartingTime%5 != 0 {
		errs.Add("starting_time", CodeInvalidTime, "starting time must be a multiple of 5 minutes")
	}
	if entry.EndingTime < 0 || entry.EndingTime >= minutesPerDay {
		errs.Add("ending_time", CodeInvalidTime, "ending time is not a valid clock time")
	} else if entry.EndingTime%5 != 0 {
		errs.Add("ending_time", CodeInvalidTime, "ending time must be a multiple of 5 minutes")
	}
	if entry.AdjustmentMins%5 != 0 {
		errs.Add("adjustment_mins", CodeInvalidAdjustment, "adjustment minutes must be a multiple of 5 minutes")
	}
	if errs.HasErrors() {
		return errs
	}

	// Overlap is fatal: the remaining checks are skipped when any sibling
	// entry for the same user, period and day intersects this one. The
	// comparison is inclusive at the boundaries, so an entry starting the
	// minute another ends is still an overlap.
	overlap := v.db.Model(&models.PayrollHours{}).
		Where("user_id = ? AND period_id = ? AND date_worked = ?", entry.UserID, entry.PeriodID, entry.DateWorked).
		Where("ending_time >= ? AND starting_time <= ?", entry.StartingTime, entry.EndingTime)
	if entry.ID != 0 {
		overlap = overlap.Where("id <> ?", entry.ID)
	}
	var count int64
	if err := overlap.Count(&count).Error; err != nil {
		msg := "could not check for overlapping entries"
		errs.Add("starting_time", CodeInvalidTime, msg)
		errs.Add("ending_time", CodeInvalidTime, msg)
		return errs
	}
	if count > 0 {
		msg := "time overlaps another entry for the same day"
		errs.Add("starting_time", CodeInvalidTime, msg)
		errs.Add("ending_time", CodeInvalidTime, msg)
		return errs
	}

	if entry.AdjustmentMins == 0 {
		if entry.EndingTime <= entry.StartingTime {
			msg := "ending time must be after the starting time"
			errs.Add("starting_time", CodeInvalidTime, msg)
			errs.Add("ending_time", CodeInvalidTime, msg)
		}
	} else {
		if entry.StartingTime != 0 {
			errs.Add("starting_time", CodeInvalidTime, "starting time must be 00:00 when adjustment minutes are set")
		}
		if entry.EndingTime != 0 {
			errs.Add("ending_time", CodeInvalidTime, "ending time must be 00:00 when adjustment minutes are set")
		}
	}

	if entry.DateWorked.Before(period.StartingDate) || entry.DateWorked.After(period.ReportingDate) {
		errs.Add("date_worked", CodeInvalidDate, "date worked must be within the period")
	}

	if entry.IsVacation {
		v.checkVacationBudget(entry, owner, period, errs)
	}

	return errs
}

// resolvePeriod fills in the entry's period, deriving it from the current
// year and month when the caller left it unset.
func (v *HoursValidator) resolvePeriod(entry *models.PayrollHours, errs FieldErrors) (*models.Period, bool) {
	if entry.PeriodID == 0 {
		year, month, _ := ResolvePeriodContext(v.now(), 0, 0)
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		var period models.Period
		if err := v.db.Where("starting_date = ?", start).First(&period).Error; err != nil {
			errs.Add("date_worked", CodeInvalidDate, "date worked must fall within a defined period")
			return nil, false
		}
		entry.PeriodID = period.ID
		entry.Period = period
		return &entry.Period, true
	}

	if entry.Period.ID != entry.PeriodID {
		if err := v.db.First(&entry.Period, entry.PeriodID).Error; err != nil {
			errs.Add("date_worked", CodeInvalidDate, "date worked must fall within a defined period")
			return nil, false
		}
	}
	return &entry.Period, true
}

// checkVacationBudget rejects the entry when the owner's fiscal-year vacation
// minutes, including this entry, would exceed the annual allotment.
func (v *HoursValidator) checkVacationBudget(entry *models.PayrollHours, owner *models.ActiveUser, period *models.Period, errs FieldErrors) {
	taken, err := v.agg.FiscalYearVacationMinutes(entry.UserID, period.FiscalYear, entry.ID)
	if err != nil {
		errs.Add("vacation_hours", CodeInvalidVacation, "could not total vacation hours for the fiscal year")
		return
	}

	total := taken + int64(entry.Duration())
	allotted := int64(owner.VacationHours) * 60
	if total > allotted {
		over := total - allotted
		errs.Add("vacation_hours", CodeInvalidVacation,
			fmt.Sprintf("vacation hours exceed the allotment of %d hours by %s", owner.VacationHours, models.FormatHM(over)))
	}
}
