package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timecard/models"
)

func TestPeriodValidator_Valid(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	p := validPeriod(2024, time.March)
	errs := v.Validate(&p)
	assert.False(t, errs.HasErrors(), "expected no errors, got: %v", errs)
}

func TestPeriodValidator_StartingDateNotFirst(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	p := validPeriod(2024, time.March)
	p.StartingDate = day(2024, time.March, 15)

	errs := v.Validate(&p)
	require.True(t, errs.Has("starting_date"))
	assert.Equal(t, CodeInvalidDate, errs["starting_date"][0].Code)
	assert.Contains(t, errs.First("starting_date"), "1st")
	// Starting date is invalid, so dependent checks must not pile on.
	assert.Len(t, errs, 1)
}

func TestPeriodValidator_PeriodNoMismatch(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	p := validPeriod(2024, time.April)
	p.PeriodNo = 3

	errs := v.Validate(&p)
	require.True(t, errs.Has("period_no"))
	assert.Equal(t, CodeInvalidPeriodNo, errs["period_no"][0].Code)
}

func TestPeriodValidator_PeriodNoOutOfRange(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	p := validPeriod(2024, time.March)
	p.PeriodNo = 13

	errs := v.Validate(&p)
	require.True(t, errs.Has("period_no"))
	assert.Equal(t, CodeInvalidPeriodNo, errs["period_no"][0].Code)
}

func TestPeriodValidator_CalendarYearTooEarly(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	p := validPeriod(2022, time.March)

	errs := v.Validate(&p)
	assert.True(t, errs.Has("calendar_year"))
}

func TestPeriodValidator_Duplicate(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	existing := createPeriod(t, db, 2024, time.March)

	p := validPeriod(2024, time.March)
	errs := v.Validate(&p)
	require.True(t, errs.Has("calendar_year"))
	require.True(t, errs.Has("starting_date"))
	assert.Equal(t, CodeDuplicateEntry, errs["calendar_year"][0].Code)
	assert.Equal(t, CodeDuplicateEntry, errs["starting_date"][0].Code)

	// Editing the period itself is not a duplicate.
	errs = v.Validate(&existing)
	assert.False(t, errs.HasErrors(), "self edit flagged as duplicate: %v", errs)
}

func TestPeriodValidator_FiscalYear(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	p := validPeriod(2024, time.September)
	require.Equal(t, "FY25", p.FiscalYear)
	errs := v.Validate(&p)
	assert.False(t, errs.HasErrors(), "expected no errors, got: %v", errs)

	p = validPeriod(2024, time.August)
	require.Equal(t, "FY24", p.FiscalYear)
	errs = v.Validate(&p)
	assert.False(t, errs.HasErrors(), "expected no errors, got: %v", errs)

	p = validPeriod(2024, time.September)
	p.FiscalYear = "FY24"
	errs = v.Validate(&p)
	require.True(t, errs.Has("fiscal_year"))
	require.True(t, errs.Has("calendar_year"))
	assert.Contains(t, errs.First("fiscal_year"), "FY25")
}

func TestPeriodValidator_StartingYearMismatch(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	p := validPeriod(2025, time.March)
	p.CalendarYear = 2024
	p.FiscalYear = models.ExpectedFiscalYear(2024, time.March)

	errs := v.Validate(&p)
	assert.True(t, errs.Has("calendar_year"))
}

func TestPeriodValidator_ReportingYearMismatch(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	p := validPeriod(2024, time.March)
	p.ReportingDate = day(2025, time.March, 31)

	errs := v.Validate(&p)
	require.True(t, errs.Has("reporting_date"))
	assert.Equal(t, CodeInvalidDate, errs["reporting_date"][0].Code)
}

func TestPeriodValidator_SubmissionBeforeReporting(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	p := validPeriod(2024, time.March)
	p.SubmissionDate = p.ReportingDate.AddDate(0, 0, -1)

	errs := v.Validate(&p)
	assert.True(t, errs.Has("submission_date"))
}

func TestPeriodValidator_PayBeforeSubmission(t *testing.T) {
	db := newTestDB(t)
	v := NewPeriodValidator(db)

	p := validPeriod(2024, time.March)
	p.PayDate = p.SubmissionDate.AddDate(0, 0, -1)

	errs := v.Validate(&p)
	assert.True(t, errs.Has("pay_date"))
}

func TestExpectedFiscalYear(t *testing.T) {
	assert.Equal(t, "FY25", models.ExpectedFiscalYear(2024, time.September))
	assert.Equal(t, "FY24", models.ExpectedFiscalYear(2024, time.August))
	assert.Equal(t, "FY25", models.ExpectedFiscalYear(2024, time.December))
	assert.Equal(t, "FY25", models.ExpectedFiscalYear(2025, time.January))
}
