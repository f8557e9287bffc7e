package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timecard/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second pooled connection would see its own empty :memory: database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.ActiveUser{}, &models.Period{}, &models.PayrollHours{}))
	return db
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// validPeriod builds a consistent period for the given month.
func validPeriod(year int, month time.Month) models.Period {
	start := day(year, month, 1)
	reporting := start.AddDate(0, 1, -1)
	return models.Period{
		PeriodNo:       int(month),
		CalendarYear:   year,
		FiscalYear:     models.ExpectedFiscalYear(year, month),
		StartingDate:   start,
		ReportingDate:  reporting,
		SubmissionDate: reporting.AddDate(0, 0, 5),
		SubmissionTime: models.DefaultSubmissionTime,
		PayDate:        reporting.AddDate(0, 0, 10),
		PayTime:        models.DefaultPayTime,
	}
}

func createPeriod(t *testing.T, db *gorm.DB, year int, month time.Month) models.Period {
	t.Helper()
	p := validPeriod(year, month)
	require.NoError(t, db.Create(&p).Error)
	return p
}

func createUser(t *testing.T, db *gorm.DB, username string, vacationHours int) models.ActiveUser {
	t.Helper()
	u := models.ActiveUser{
		Username:      username,
		FullName:      username,
		PhoneNumber:   "+1 555 " + username,
		PasswordHash:  "x",
		StartDate:     day(2023, time.January, 1),
		VacationHours: vacationHours,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}
