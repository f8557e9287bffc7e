package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"timecard/config"
	"timecard/database"
	"timecard/middleware"
	"timecard/models"

	"golang.org/x/crypto/bcrypt"
)

// AdminHandler serves the staff-only screens: the counts dashboard and user
// management. Account creation is staff-only; there is no self-registration.
type AdminHandler struct {
	config    *config.Config
	templates map[string]*template.Template
}

func NewAdminHandler(cfg *config.Config, templates map[string]*template.Template) *AdminHandler {
	return &AdminHandler{
		config:    cfg,
		templates: templates,
	}
}

func (h *AdminHandler) AdminPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	db := database.GetDB()
	var numUsers, numPeriods, numEntries int64
	db.Model(&models.ActiveUser{}).Count(&numUsers)
	db.Model(&models.Period{}).Count(&numPeriods)
	db.Model(&models.PayrollHours{}).Count(&numEntries)

	data := map[string]interface{}{
		"User":       user,
		"NumUsers":   numUsers,
		"NumPeriods": numPeriods,
		"NumEntries": numEntries,
	}
	h.templates["admin"].ExecuteTemplate(w, "base", data)
}

func (h *AdminHandler) UsersPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var users []models.ActiveUser
	database.GetDB().Order("username").Find(&users)

	data := map[string]interface{}{
		"User":    user,
		"Users":   users,
		"Error":   r.URL.Query().Get("error"),
		"Success": r.URL.Query().Get("success"),
	}
	h.templates["users"].ExecuteTemplate(w, "base", data)
}

func (h *AdminHandler) NewUserPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	data := map[string]interface{}{
		"User":   user,
		"Target": &models.ActiveUser{},
		"Error":  r.URL.Query().Get("error"),
		"Today":  time.Now().Format("2006-01-02"),
	}
	h.templates["user-form"].ExecuteTemplate(w, "base", data)
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil || !user.CanManageUsers() {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/users/new?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	username := r.FormValue("username")
	if len(username) < 3 {
		http.Redirect(w, r, "/users/new?error=Username+must+be+at+least+3+characters", http.StatusSeeOther)
		return
	}

	password := r.FormValue("password")
	if len(password) < 5 {
		http.Redirect(w, r, "/users/new?error=Password+must+be+at+least+5+characters", http.StatusSeeOther)
		return
	}

	startDate, err := time.Parse("2006-01-02", r.FormValue("start_date"))
	if err != nil {
		http.Redirect(w, r, "/users/new?error=Employment+start+date+is+required", http.StatusSeeOther)
		return
	}

	phone := r.FormValue("phone_number")
	if phone == "" {
		http.Redirect(w, r, "/users/new?error=Mobile+phone+number+is+required", http.StatusSeeOther)
		return
	}

	vacationHours, _ := strconv.Atoi(r.FormValue("vacation_hours"))
	if vacationHours < 0 {
		http.Redirect(w, r, "/users/new?error=Vacation+hours+must+not+be+negative", http.StatusSeeOther)
		return
	}

	var existing models.ActiveUser
	if err := database.GetDB().Where("username = ?", username).First(&existing).Error; err == nil {
		http.Redirect(w, r, "/users/new?error=Username+already+exists", http.StatusSeeOther)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		http.Redirect(w, r, "/users/new?error=Failed+to+create+account", http.StatusSeeOther)
		return
	}

	target := models.ActiveUser{
		Username:           username,
		FullName:           r.FormValue("full_name"),
		Email:              r.FormValue("email"),
		PhoneNumber:        phone,
		PasswordHash:       string(hashedPassword),
		StartDate:          startDate,
		VacationHours:      vacationHours,
		IsStaff:            user.IsSuperuser && r.FormValue("is_staff") == "on",
		MustChangePassword: true,
	}

	if err := database.GetDB().Create(&target).Error; err != nil {
		http.Redirect(w, r, "/users/new?error=Failed+to+create+account", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/users?success=User+created", http.StatusSeeOther)
}

func (h *AdminHandler) EditUserPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/users?error=Invalid+user+ID", http.StatusSeeOther)
		return
	}

	var target models.ActiveUser
	if err := database.GetDB().First(&target, id).Error; err != nil {
		http.Redirect(w, r, "/users?error=User+not+found", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"User":   user,
		"Target": &target,
		"Error":  r.URL.Query().Get("error"),
	}
	h.templates["user-edit"].ExecuteTemplate(w, "base", data)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil || !user.CanManageUsers() {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/users?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/users?error=Invalid+user+ID", http.StatusSeeOther)
		return
	}

	var target models.ActiveUser
	if err := database.GetDB().First(&target, id).Error; err != nil {
		http.Redirect(w, r, "/users?error=User+not+found", http.StatusSeeOther)
		return
	}

	target.FullName = r.FormValue("full_name")
	target.Email = r.FormValue("email")
	if phone := r.FormValue("phone_number"); phone != "" {
		target.PhoneNumber = phone
	}
	if vac, err := strconv.Atoi(r.FormValue("vacation_hours")); err == nil && vac >= 0 {
		target.VacationHours = vac
	}
	if endStr := r.FormValue("end_date"); endStr != "" {
		if endDate, err := time.Parse("2006-01-02", endStr); err == nil {
			target.EndDate = &endDate
		}
	} else {
		target.EndDate = nil
	}
	if user.IsSuperuser {
		target.IsStaff = r.FormValue("is_staff") == "on"
	}

	if err := database.GetDB().Save(&target).Error; err != nil {
		http.Redirect(w, r, "/users?error=Failed+to+update+user", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/users?success=User+updated", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil || !user.CanManageUsers() {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/users?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/users?error=Invalid+user+ID", http.StatusSeeOther)
		return
	}

	if uint(id) == user.ID {
		http.Redirect(w, r, "/users?error=Cannot+delete+your+own+account", http.StatusSeeOther)
		return
	}

	var target models.ActiveUser
	if err := database.GetDB().First(&target, id).Error; err != nil {
		http.Redirect(w, r, "/users?error=User+not+found", http.StatusSeeOther)
		return
	}

	if err := database.GetDB().Delete(&target).Error; err != nil {
		http.Redirect(w, r, "/users?error=Failed+to+delete+user", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/users?success=User+deleted", http.StatusSeeOther)
}
