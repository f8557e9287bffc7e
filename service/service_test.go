package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
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

func buildPeriod(year int, month time.Month) models.Period {
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
	p := buildPeriod(year, month)
	require.NoError(t, db.Create(&p).Error)
	return p
}

func createUser(t *testing.T, db *gorm.DB, username string) models.ActiveUser {
	t.Helper()
	u := models.ActiveUser{
		Username:     username,
		FullName:     username,
		PhoneNumber:  "+1 555 " + username,
		PasswordHash: "x",
		StartDate:    day(2023, time.January, 1),
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestSaveHours_Persists(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	period := createPeriod(t, db, 2024, time.March)

	entry := &models.PayrollHours{
		PeriodID:     period.ID,
		Period:       period,
		UserID:       user.ID,
		DateWorked:   day(2024, time.March, 4),
		StartingTime: 9 * 60,
		EndingTime:   17 * 60,
	}
	ferrs, err := SaveHours(db, entry, &user)
	require.NoError(t, err)
	require.False(t, ferrs.HasErrors(), "unexpected errors: %v", ferrs)
	require.NotZero(t, entry.ID)

	var stored models.PayrollHours
	require.NoError(t, db.First(&stored, entry.ID).Error)
	assert.Equal(t, 480, stored.MinutesWorked, "minutes worked recomputed on save")
}

func TestSaveHours_RecomputesMinutesOnEdit(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	period := createPeriod(t, db, 2024, time.March)

	entry := &models.PayrollHours{
		PeriodID:     period.ID,
		Period:       period,
		UserID:       user.ID,
		DateWorked:   day(2024, time.March, 4),
		StartingTime: 9 * 60,
		EndingTime:   17 * 60,
	}
	ferrs, err := SaveHours(db, entry, &user)
	require.NoError(t, err)
	require.False(t, ferrs.HasErrors())

	entry.EndingTime = 12 * 60
	ferrs, err = SaveHours(db, entry, &user)
	require.NoError(t, err)
	require.False(t, ferrs.HasErrors(), "unexpected errors: %v", ferrs)

	var stored models.PayrollHours
	require.NoError(t, db.First(&stored, entry.ID).Error)
	assert.Equal(t, 180, stored.MinutesWorked)
}

func TestSaveHours_RejectedWritesNothing(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	period := createPeriod(t, db, 2024, time.March)

	entry := &models.PayrollHours{
		PeriodID:     period.ID,
		Period:       period,
		UserID:       user.ID,
		DateWorked:   day(2024, time.March, 4),
		StartingTime: 17 * 60,
		EndingTime:   9 * 60,
	}
	ferrs, err := SaveHours(db, entry, &user)
	require.NoError(t, err)
	require.True(t, ferrs.HasErrors())

	var count int64
	require.NoError(t, db.Model(&models.PayrollHours{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSavePeriod_Persists(t *testing.T) {
	db := newTestDB(t)

	p := buildPeriod(2024, time.March)
	ferrs, err := SavePeriod(db, &p)
	require.NoError(t, err)
	require.False(t, ferrs.HasErrors(), "unexpected errors: %v", ferrs)
	assert.NotZero(t, p.ID)
}

func TestSavePeriod_DuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	createPeriod(t, db, 2024, time.March)

	dup := buildPeriod(2024, time.March)
	ferrs, err := SavePeriod(db, &dup)
	require.NoError(t, err)
	require.True(t, ferrs.HasErrors())
	assert.True(t, ferrs.Has("calendar_year"))
	assert.True(t, ferrs.Has("starting_date"))

	var count int64
	require.NoError(t, db.Model(&models.Period{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitAllHours(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	period := createPeriod(t, db, 2024, time.March)

	for d := 4; d <= 6; d++ {
		entry := models.PayrollHours{
			PeriodID:     period.ID,
			UserID:       user.ID,
			DateWorked:   day(2024, time.March, d),
			StartingTime: 9 * 60,
			EndingTime:   17 * 60,
		}
		require.NoError(t, db.Create(&entry).Error)
	}
	other := models.PayrollHours{
		PeriodID:     period.ID,
		UserID:       bob.ID,
		DateWorked:   day(2024, time.March, 4),
		StartingTime: 9 * 60,
		EndingTime:   17 * 60,
	}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, SubmitAllHours(db, user.ID, period.ID))

	var submitted int64
	require.NoError(t, db.Model(&models.PayrollHours{}).
		Where("user_id = ? AND employee_submitted = ?", user.ID, true).
		Count(&submitted).Error)
	assert.Equal(t, int64(3), submitted)

	var bobEntry models.PayrollHours
	require.NoError(t, db.First(&bobEntry, other.ID).Error)
	assert.False(t, bobEntry.EmployeeSubmitted, "other users' entries untouched")
}
