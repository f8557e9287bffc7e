package handlers

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"timecard/config"
	"timecard/database"
	"timecard/middleware"
	"timecard/models"
	"timecard/service"
	"timecard/validation"
)

type PeriodHandler struct {
	config    *config.Config
	templates map[string]*template.Template
}

func NewPeriodHandler(cfg *config.Config, templates map[string]*template.Template) *PeriodHandler {
	return &PeriodHandler{
		config:    cfg,
		templates: templates,
	}
}

// ListPage shows the periods of one calendar year with prev/next navigation.
func (h *PeriodHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	displayYear := year
	if displayYear < 2024 {
		displayYear = time.Now().Year()
	}
	if displayYear < 2024 {
		displayYear = 2024
	}

	db := database.GetDB()

	var periods []models.Period
	db.Where("calendar_year = ?", displayYear).Order("starting_date").Find(&periods)

	var yearList []int
	db.Model(&models.Period{}).Distinct("calendar_year").Order("calendar_year").Pluck("calendar_year", &yearList)
	if len(yearList) > 5 {
		yearList = yearList[len(yearList)-5:]
	}

	prevYearOK, nextYearOK := false, false
	for _, y := range yearList {
		if y == displayYear-1 {
			prevYearOK = true
		}
		if y == displayYear+1 {
			nextYearOK = true
		}
	}

	data := map[string]interface{}{
		"User":        user,
		"DisplayYear": displayYear,
		"Periods":     periods,
		"YearList":    yearList,
		"PrevYear":    displayYear - 1,
		"NextYear":    displayYear + 1,
		"PrevYearOK":  prevYearOK,
		"NextYearOK":  nextYearOK,
		"Error":       r.URL.Query().Get("error"),
		"Success":     r.URL.Query().Get("success"),
	}
	h.templates["periods"].ExecuteTemplate(w, "base", data)
}

func (h *PeriodHandler) NewPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	h.renderForm(w, "period-form", user, &models.Period{
		SubmissionTime: models.DefaultSubmissionTime,
		PayTime:        models.DefaultPayTime,
	}, validation.FieldErrors{})
}

func (h *PeriodHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil || !user.CanManagePeriods() {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	period, ferrs := h.parseForm(r, nil)
	if !ferrs.HasErrors() {
		saved, err := service.SavePeriod(database.GetDB(), period)
		if err != nil {
			http.Redirect(w, r, "/periods?error=Failed+to+save+period", http.StatusSeeOther)
			return
		}
		ferrs = saved
	}

	if ferrs.HasErrors() {
		h.renderForm(w, "period-form", user, period, ferrs)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/periods?year=%d&success=Period+created", period.CalendarYear), http.StatusSeeOther)
}

func (h *PeriodHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/periods?error=Invalid+period+ID", http.StatusSeeOther)
		return
	}

	var period models.Period
	if err := database.GetDB().First(&period, id).Error; err != nil {
		http.Redirect(w, r, "/periods?error=Period+not+found", http.StatusSeeOther)
		return
	}

	h.renderForm(w, "period-edit", user, &period, validation.FieldErrors{})
}

func (h *PeriodHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil || !user.CanManagePeriods() {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/periods?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/periods?error=Invalid+period+ID", http.StatusSeeOther)
		return
	}

	var existing models.Period
	if err := database.GetDB().First(&existing, id).Error; err != nil {
		http.Redirect(w, r, "/periods?error=Period+not+found", http.StatusSeeOther)
		return
	}

	period, ferrs := h.parseForm(r, &existing)
	if !ferrs.HasErrors() {
		saved, err := service.SavePeriod(database.GetDB(), period)
		if err != nil {
			http.Redirect(w, r, "/periods?error=Failed+to+save+period", http.StatusSeeOther)
			return
		}
		ferrs = saved
	}

	if ferrs.HasErrors() {
		h.renderForm(w, "period-edit", user, period, ferrs)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/periods?year=%d&success=Period+updated", period.CalendarYear), http.StatusSeeOther)
}

func (h *PeriodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil || !user.CanManagePeriods() {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/periods?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/periods?error=Invalid+period+ID", http.StatusSeeOther)
		return
	}

	var period models.Period
	if err := database.GetDB().First(&period, id).Error; err != nil {
		http.Redirect(w, r, "/periods?error=Period+not+found", http.StatusSeeOther)
		return
	}

	// Refuse to orphan hours entries
	var count int64
	database.GetDB().Model(&models.PayrollHours{}).Where("period_id = ?", period.ID).Count(&count)
	if count > 0 {
		http.Redirect(w, r, fmt.Sprintf("/periods?year=%d&error=Period+has+hours+entries", period.CalendarYear), http.StatusSeeOther)
		return
	}

	if err := database.GetDB().Delete(&period).Error; err != nil {
		http.Redirect(w, r, "/periods?error=Failed+to+delete+period", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/periods?year=%d&success=Period+deleted", period.CalendarYear), http.StatusSeeOther)
}

// ExportCSV writes every hours entry of one period, ordered by employee and
// day, for paycheck processing.
func (h *PeriodHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil || !user.IsPrivileged() {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid period", http.StatusBadRequest)
		return
	}

	var period models.Period
	if err := database.GetDB().First(&period, id).Error; err != nil {
		http.Error(w, "Period not found", http.StatusNotFound)
		return
	}

	var entries []models.PayrollHours
	database.GetDB().Preload("User").
		Where("period_id = ?", period.ID).
		Order("user_id, date_worked, starting_time").
		Find(&entries)

	filename := fmt.Sprintf("payroll_%d_%02d.csv", period.CalendarYear, period.PeriodNo)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Employee", "Date", "Start", "End", "Minutes", "Vacation", "Adjustment Mins", "Approved", "Submitted"})
	for _, entry := range entries {
		writer.Write([]string{
			entry.User.DisplayName(),
			entry.DateWorked.Format("2006-01-02"),
			models.FormatClock(entry.StartingTime),
			models.FormatClock(entry.EndingTime),
			strconv.Itoa(entry.MinutesWorked),
			strconv.FormatBool(entry.IsVacation),
			strconv.Itoa(entry.AdjustmentMins),
			strconv.FormatBool(entry.AdjustmentApproved),
			strconv.FormatBool(entry.EmployeeSubmitted),
		})
	}
}

func (h *PeriodHandler) parseForm(r *http.Request, existing *models.Period) (*models.Period, validation.FieldErrors) {
	ferrs := validation.FieldErrors{}

	period := &models.Period{
		SubmissionTime: models.DefaultSubmissionTime,
		PayTime:        models.DefaultPayTime,
	}
	if existing != nil {
		*period = *existing
	}

	if no, err := strconv.Atoi(r.FormValue("period_no")); err == nil {
		period.PeriodNo = no
	} else {
		ferrs.Add("period_no", validation.CodeInvalidPeriodNo, "period no must be a whole number")
	}
	if year, err := strconv.Atoi(r.FormValue("calendar_year")); err == nil {
		period.CalendarYear = year
	} else {
		ferrs.Add("calendar_year", validation.CodeInvalidDate, "calendar year must be a whole number")
	}
	period.FiscalYear = r.FormValue("fiscal_year")

	parseDate := func(field string, dst *time.Time) {
		value := r.FormValue(field)
		if value == "" && existing != nil {
			return
		}
		date, err := time.Parse("2006-01-02", value)
		if err != nil {
			ferrs.Add(field, validation.CodeInvalidDate, field+" is not a valid date")
			return
		}
		*dst = date
	}
	parseDate("starting_date", &period.StartingDate)
	parseDate("reporting_date", &period.ReportingDate)
	parseDate("submission_date", &period.SubmissionDate)
	parseDate("pay_date", &period.PayDate)

	parseClock := func(field string, dst *int) {
		value := r.FormValue(field)
		if value == "" {
			return
		}
		mins, err := models.ParseClock(value)
		if err != nil {
			ferrs.Add(field, validation.CodeInvalidTime, field+" is not a valid clock time")
			return
		}
		*dst = mins
	}
	parseClock("submission_time", &period.SubmissionTime)
	parseClock("pay_time", &period.PayTime)

	return period, ferrs
}

func (h *PeriodHandler) renderForm(w http.ResponseWriter, page string, user *models.ActiveUser, period *models.Period, ferrs validation.FieldErrors) {
	data := map[string]interface{}{
		"User":     user,
		"Period":   period,
		"Editable": validation.EditablePeriodFields(user),
		"Errors":   ferrs,
	}
	h.templates[page].ExecuteTemplate(w, "base", data)
}
