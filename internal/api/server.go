package api

import (
	"encoding/json"
	"net/http"

	"github.com/learnsphere/marketplace-companion/internal/api/handlers"
	"github.com/learnsphere/marketplace-companion/internal/controller"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/internal/services"
	"github.com/learnsphere/marketplace-companion/internal/session"
	"github.com/learnsphere/marketplace-companion/pkg/notify"
)

// Server holds all the app components together
type Server struct {
	Sessions *session.Store

	Router *http.ServeMux // handles routing requests

	// handlers for different parts of the local surface
	AuthHandler         *handlers.AuthHandler
	CatalogHandler      *handlers.CatalogHandler
	CourseViewHandler   *handlers.CourseViewHandler
	StudentHandler      *handlers.StudentHandler
	InstructorHandler   *handlers.InstructorHandler
	AdminHandler        *handlers.AdminHandler
	NotificationHandler *handlers.NotificationHandler
}

// NewServer wires up all the dependencies and returns a ready-to-use server
func NewServer(sessions *session.Store, client *gateway.Client, registry *controller.Registry, center *notify.Center) *Server {
	// create service layer instances
	catalogSvc := services.NewCatalogService(client)
	studentSvc := services.NewStudentService(client)
	instructorSvc := services.NewInstructorService(client, center)
	adminSvc := services.NewAdminService(client, center)

	// wire everything together
	server := &Server{
		Sessions:            sessions,
		Router:              http.NewServeMux(),
		AuthHandler:         handlers.NewAuthHandler(sessions, registry, center),
		CatalogHandler:      handlers.NewCatalogHandler(catalogSvc),
		CourseViewHandler:   handlers.NewCourseViewHandler(registry, sessions),
		StudentHandler:      handlers.NewStudentHandler(studentSvc),
		InstructorHandler:   handlers.NewInstructorHandler(instructorSvc),
		AdminHandler:        handlers.NewAdminHandler(adminSvc),
		NotificationHandler: handlers.NewNotificationHandler(center),
	}

	server.setupRoutes()
	return server
}

// setupRoutes maps all the endpoints to handler functions
func (s *Server) setupRoutes() {
	s.Router.HandleFunc("/app", s.HelloHandler)

	// session lifecycle
	s.Router.HandleFunc("POST /app/auth/login", s.AuthHandler.Login)
	s.Router.HandleFunc("POST /app/auth/signup", s.AuthHandler.Signup)
	s.Router.HandleFunc("POST /app/auth/logout", s.AuthHandler.Logout)
	s.Router.HandleFunc("GET /app/auth/session", s.AuthHandler.Session)

	// public catalog - anonymous browsing is allowed
	s.Router.HandleFunc("GET /app/courses", s.CatalogHandler.List)
	s.Router.HandleFunc("GET /app/courses/{id}", s.CatalogHandler.Get)

	// course view lifecycle - public too, the view itself gates enrollment
	s.Router.HandleFunc("POST /app/courses/{id}/view", s.CourseViewHandler.Mount)
	s.Router.HandleFunc("GET /app/courses/{id}/view", s.CourseViewHandler.Snapshot)
	s.Router.HandleFunc("DELETE /app/courses/{id}/view", s.CourseViewHandler.Unmount)
	s.Router.HandleFunc("POST /app/courses/{id}/view/enroll", s.CourseViewHandler.Enroll)
	s.Router.HandleFunc("POST /app/courses/{id}/view/lessons/{lessonID}/toggle", s.CourseViewHandler.ToggleLesson)
	s.Router.HandleFunc("POST /app/courses/{id}/view/lessons/{lessonID}/select", s.CourseViewHandler.SelectLesson)

	// role-gated dashboards
	s.Router.HandleFunc("GET /app/student/dashboard", s.RequireRoles(s.StudentHandler.Dashboard, models.RoleStudent))

	s.Router.HandleFunc("GET /app/instructor/dashboard", s.RequireRoles(s.InstructorHandler.Dashboard, models.RoleInstructor))
	s.Router.HandleFunc("POST /app/instructor/courses", s.RequireRoles(s.InstructorHandler.CreateCourse, models.RoleInstructor))
	s.Router.HandleFunc("DELETE /app/instructor/courses/{id}", s.RequireRoles(s.InstructorHandler.DeleteCourse, models.RoleInstructor))

	s.Router.HandleFunc("GET /app/admin/dashboard", s.RequireRoles(s.AdminHandler.Dashboard, models.RoleAdmin))
	s.Router.HandleFunc("DELETE /app/admin/users/{id}", s.RequireRoles(s.AdminHandler.DeleteUser, models.RoleAdmin))
	s.Router.HandleFunc("POST /app/admin/courses/{id}/toggle-approval", s.RequireRoles(s.AdminHandler.ToggleCourseApproval, models.RoleAdmin))
	s.Router.HandleFunc("DELETE /app/admin/courses/{id}", s.RequireRoles(s.AdminHandler.DeleteCourse, models.RoleAdmin))

	// toast notifications
	s.Router.HandleFunc("GET /app/notifications", s.NotificationHandler.Drain)
}

// ServeHTTP implements the http.Handler interface
// This allows the server to be used directly with http.ListenAndServe
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// HelloHandler is a simple handler for the base endpoint, lets the shell
// check the companion process is alive
func (s *Server) HelloHandler(w http.ResponseWriter, r *http.Request) {
	type responseData struct {
		Message string `json:"message"`
	}

	response := responseData{Message: "Marketplace companion is running"}
	jsonResponse, _ := json.Marshal(response)
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonResponse)
}
