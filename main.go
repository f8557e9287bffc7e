package main

import (
	"html/template"
	"log"
	"net/http"

	"timecard/config"
	"timecard/database"
	"timecard/handlers"
	"timecard/middleware"
	"timecard/models"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Define template functions
	funcMap := template.FuncMap{
		"clock": models.FormatClock,
		"hm":    models.FormatHM,
		"hmInt": func(minutes int) string { return models.FormatHM(int64(minutes)) },
	}

	// Parse templates - each page template paired with base
	templates := make(map[string]*template.Template)
	pages := []string{
		"login", "change-password", "home",
		"hours-form", "hours-edit",
		"periods", "period-form", "period-edit",
		"admin", "users", "user-form", "user-edit",
	}
	for _, page := range pages {
		templates[page] = template.Must(template.New("").Funcs(funcMap).ParseFiles(
			"templates/base.html",
			"templates/"+page+".html",
		))
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, templates)
	hoursHandler := handlers.NewHoursHandler(cfg, templates)
	periodHandler := handlers.NewPeriodHandler(cfg, templates)
	adminHandler := handlers.NewAdminHandler(cfg, templates)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
	router.Get("/login", authHandler.LoginPage)
	router.Post("/login", authHandler.Login)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		// Logout (doesn't need password change check)
		r.Get("/logout", authHandler.Logout)

		// Password change routes (accessible even when password change required)
		r.Get("/change-password", authHandler.ChangePasswordPage)
		r.Post("/change-password", authHandler.ChangePassword)

		// Routes that require password to be changed first
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePasswordChange)

			// Employee home and hours entries
			r.Get("/home", hoursHandler.Home)
			r.Get("/hours/new", hoursHandler.NewEntryPage)
			r.Post("/hours/new", hoursHandler.CreateEntry)
			r.Get("/hours/edit", hoursHandler.EditEntryPage)
			r.Post("/hours/edit", hoursHandler.UpdateEntry)
			r.Post("/hours/delete", hoursHandler.DeleteEntry)
			r.Post("/hours/submit", hoursHandler.SubmitAll)

			// Period list is visible to every employee
			r.Get("/periods", periodHandler.ListPage)

			// Staff only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireStaff)
				r.Get("/admin", adminHandler.AdminPage)
				r.Get("/periods/new", periodHandler.NewPage)
				r.Post("/periods/new", periodHandler.Create)
				r.Get("/periods/edit", periodHandler.EditPage)
				r.Post("/periods/edit", periodHandler.Update)
				r.Post("/periods/delete", periodHandler.Delete)
				r.Get("/periods/export", periodHandler.ExportCSV)
				r.Get("/users", adminHandler.UsersPage)
				r.Get("/users/new", adminHandler.NewUserPage)
				r.Post("/users/new", adminHandler.CreateUser)
				r.Get("/users/edit", adminHandler.EditUserPage)
				r.Post("/users/edit", adminHandler.UpdateUser)
				r.Post("/users/delete", adminHandler.DeleteUser)
			})
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Printf("Default admin credentials: admin / admin")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
