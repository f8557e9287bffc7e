package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"timecard/aggregate"
	"timecard/config"
	"timecard/database"
	"timecard/middleware"
	"timecard/models"
	"timecard/service"
	"timecard/validation"
)

type HoursHandler struct {
	config    *config.Config
	templates map[string]*template.Template
}

func NewHoursHandler(cfg *config.Config, templates map[string]*template.Template) *HoursHandler {
	return &HoursHandler{
		config:    cfg,
		templates: templates,
	}
}

// Home is the employee landing page: the resolved period's entries plus the
// worked, vacation and adjustment totals. Staff may view another employee via
// ?user_id=.
func (h *HoursHandler) Home(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	owner := actor
	if uidStr := r.URL.Query().Get("user_id"); uidStr != "" && actor.IsPrivileged() {
		if uid, err := strconv.ParseUint(uidStr, 10, 32); err == nil {
			var u models.ActiveUser
			if err := database.GetDB().First(&u, uint(uid)).Error; err == nil {
				owner = &u
			}
		}
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	currYear, currMonth, editable := validation.ResolvePeriodContext(time.Now(), year, month)

	db := database.GetDB()
	agg := aggregate.NewEngine(db)

	var (
		period         models.Period
		periodFound    bool
		entries        []models.PayrollHours
		workedMins     int64
		vacTakenMins   int64
		adjustmentMins int64
		allSubmitted   = true
	)

	start := time.Date(currYear, time.Month(currMonth), 1, 0, 0, 0, 0, time.UTC)
	if err := db.Where("starting_date = ?", start).First(&period).Error; err == nil {
		periodFound = true
		workedMins, _ = agg.PeriodWorkedMinutes(owner.ID, period.ID)
		vacTakenMins, _ = agg.FiscalYearVacationMinutes(owner.ID, period.FiscalYear, 0)
		adjustmentMins, _ = agg.PeriodAdjustmentMinutes(owner.ID, period.ID)
		allSubmitted, _ = agg.AllSubmitted(owner.ID, period.ID)
		db.Where("user_id = ? AND period_id = ?", owner.ID, period.ID).
			Order("date_worked, starting_time").Find(&entries)
	}

	prevYear, prevMonth := currYear, currMonth-1
	if prevMonth < 1 {
		prevYear, prevMonth = currYear-1, 12
	}
	nextYear, nextMonth := currYear, currMonth+1
	if nextMonth > 12 {
		nextYear, nextMonth = currYear+1, 1
	}

	data := map[string]interface{}{
		"User":           actor,
		"Owner":          owner,
		"CurrYear":       currYear,
		"CurrMonth":      currMonth,
		"Editable":       editable,
		"PeriodFound":    periodFound,
		"Period":         &period,
		"Entries":        entries,
		"WorkedMins":     workedMins,
		"VacTakenMins":   vacTakenMins,
		"AdjustmentMins": adjustmentMins,
		"AllSubmitted":   allSubmitted,
		"PrevYear":       prevYear,
		"PrevMonth":      prevMonth,
		"NextYear":       nextYear,
		"NextMonth":      nextMonth,
		"Error":          r.URL.Query().Get("error"),
		"Success":        r.URL.Query().Get("success"),
	}
	h.templates["home"].ExecuteTemplate(w, "base", data)
}

func (h *HoursHandler) NewEntryPage(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())

	var users []models.ActiveUser
	if actor.IsPrivileged() {
		database.GetDB().Find(&users)
	}

	data := map[string]interface{}{
		"User":     actor,
		"Users":    users,
		"Entry":    &models.PayrollHours{},
		"Editable": validation.EditableHoursFields(actor, actor),
		"Errors":   validation.FieldErrors{},
		"Today":    time.Now().Format("2006-01-02"),
	}
	h.templates["hours-form"].ExecuteTemplate(w, "base", data)
}

func (h *HoursHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	entry, owner, ferrs := h.parseEntryForm(r, actor, nil)
	if owner == nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if !ferrs.HasErrors() {
		saved, err := service.SaveHours(database.GetDB(), entry, owner)
		if err != nil {
			http.Redirect(w, r, "/home?error=Failed+to+save+entry", http.StatusSeeOther)
			return
		}
		ferrs = saved
	}

	if ferrs.HasErrors() {
		h.renderEntryForm(w, "hours-form", actor, owner, entry, ferrs)
		return
	}

	http.Redirect(w, r, "/home?success=Hours+entry+created", http.StatusSeeOther)
}

func (h *HoursHandler) EditEntryPage(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		http.Redirect(w, r, "/home?error=Invalid+entry+ID", http.StatusSeeOther)
		return
	}

	var entry models.PayrollHours
	if err := database.GetDB().Preload("User").Preload("Period").First(&entry, id).Error; err != nil {
		http.Redirect(w, r, "/home?error=Entry+not+found", http.StatusSeeOther)
		return
	}

	if !actor.CanManageHoursFor(entry.UserID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	h.renderEntryForm(w, "hours-edit", actor, &entry.User, &entry, validation.FieldErrors{})
}

func (h *HoursHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/home?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/home?error=Invalid+entry+ID", http.StatusSeeOther)
		return
	}

	var existing models.PayrollHours
	if err := database.GetDB().First(&existing, id).Error; err != nil {
		http.Redirect(w, r, "/home?error=Entry+not+found", http.StatusSeeOther)
		return
	}

	if !actor.CanManageHoursFor(existing.UserID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	entry, owner, ferrs := h.parseEntryForm(r, actor, &existing)
	if owner == nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if !ferrs.HasErrors() {
		saved, err := service.SaveHours(database.GetDB(), entry, owner)
		if err != nil {
			http.Redirect(w, r, "/home?error=Failed+to+save+entry", http.StatusSeeOther)
			return
		}
		ferrs = saved
	}

	if ferrs.HasErrors() {
		h.renderEntryForm(w, "hours-edit", actor, owner, entry, ferrs)
		return
	}

	http.Redirect(w, r, "/home?success=Hours+entry+updated", http.StatusSeeOther)
}

func (h *HoursHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/home?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/home?error=Invalid+entry+ID", http.StatusSeeOther)
		return
	}

	var entry models.PayrollHours
	if err := database.GetDB().First(&entry, id).Error; err != nil {
		http.Redirect(w, r, "/home?error=Entry+not+found", http.StatusSeeOther)
		return
	}

	if !actor.CanManageHoursFor(entry.UserID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := database.GetDB().Delete(&entry).Error; err != nil {
		http.Redirect(w, r, "/home?error=Failed+to+delete+entry", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/home?success=Hours+entry+deleted", http.StatusSeeOther)
}

// SubmitAll marks every entry for the actor's period as employee-submitted.
func (h *HoursHandler) SubmitAll(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/home?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	periodID, err := strconv.ParseUint(r.FormValue("period_id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/home?error=Invalid+period", http.StatusSeeOther)
		return
	}

	if err := service.SubmitAllHours(database.GetDB(), actor.ID, uint(periodID)); err != nil {
		http.Redirect(w, r, "/home?error=Failed+to+submit+hours", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/home?success=All+hours+submitted", http.StatusSeeOther)
}

// parseEntryForm builds a candidate entry from the posted form, honouring the
// actor's editable-field set. Parse failures land in the returned field errors
// with the same codes the validator uses. A nil owner means the actor may not
// act for the requested user.
func (h *HoursHandler) parseEntryForm(r *http.Request, actor *models.ActiveUser, existing *models.PayrollHours) (*models.PayrollHours, *models.ActiveUser, validation.FieldErrors) {
	ferrs := validation.FieldErrors{}

	entry := &models.PayrollHours{}
	if existing != nil {
		*entry = *existing
	}

	owner := actor
	editable := validation.EditableHoursFields(actor, actor)

	if editable["user"] {
		if uidStr := r.FormValue("user_id"); uidStr != "" {
			uid, err := strconv.ParseUint(uidStr, 10, 32)
			if err != nil {
				return entry, nil, ferrs
			}
			var u models.ActiveUser
			if err := database.GetDB().First(&u, uint(uid)).Error; err != nil {
				return entry, nil, ferrs
			}
			owner = &u
		}
	}
	if existing == nil {
		entry.UserID = owner.ID
	} else if entry.UserID != owner.ID {
		if !actor.IsPrivileged() {
			return entry, nil, ferrs
		}
		entry.UserID = owner.ID
	}

	if editable["period"] {
		if pidStr := r.FormValue("period_id"); pidStr != "" {
			if pid, err := strconv.ParseUint(pidStr, 10, 32); err == nil {
				entry.PeriodID = uint(pid)
				entry.Period = models.Period{}
			}
		}
	}

	if dateStr := r.FormValue("date_worked"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			ferrs.Add("date_worked", validation.CodeInvalidDate, "date worked is not a valid date")
		} else {
			entry.DateWorked = date
		}
	} else if existing == nil {
		ferrs.Add("date_worked", validation.CodeInvalidDate, "date worked is required")
	}

	if startStr := r.FormValue("starting_time"); startStr != "" || existing == nil {
		mins, err := models.ParseClock(startStr)
		if err != nil {
			ferrs.Add("starting_time", validation.CodeInvalidTime, "starting time is not a valid clock time")
		} else {
			entry.StartingTime = mins
		}
	}
	if endStr := r.FormValue("ending_time"); endStr != "" || existing == nil {
		mins, err := models.ParseClock(endStr)
		if err != nil {
			ferrs.Add("ending_time", validation.CodeInvalidTime, "ending time is not a valid clock time")
		} else {
			entry.EndingTime = mins
		}
	}

	if editable["vacation_hours"] {
		entry.IsVacation = r.FormValue("vacation_hours") == "on"
	}

	if adjStr := r.FormValue("adjustment_mins"); adjStr != "" {
		adj, err := strconv.Atoi(adjStr)
		if err != nil {
			ferrs.Add("adjustment_mins", validation.CodeInvalidAdjustment, "adjustment minutes must be a whole number")
		} else {
			entry.AdjustmentMins = adj
		}
	} else if existing == nil {
		entry.AdjustmentMins = 0
	}

	entry.EmployeeSubmitted = r.FormValue("employee_submitted") == "on"
	if editable["adjustment_approved"] {
		entry.AdjustmentApproved = r.FormValue("adjustment_approved") == "on"
	}

	return entry, owner, ferrs
}

func (h *HoursHandler) renderEntryForm(w http.ResponseWriter, page string, actor, owner *models.ActiveUser, entry *models.PayrollHours, ferrs validation.FieldErrors) {
	var users []models.ActiveUser
	if actor.IsPrivileged() {
		database.GetDB().Find(&users)
	}

	data := map[string]interface{}{
		"User":     actor,
		"Owner":    owner,
		"Users":    users,
		"Entry":    entry,
		"Editable": validation.EditableHoursFields(actor, owner),
		"Errors":   ferrs,
		"Today":    time.Now().Format("2006-01-02"),
	}
	h.templates[page].ExecuteTemplate(w, "base", data)
}
