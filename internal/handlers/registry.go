package handlers

import (
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
	AdminHandler       *AdminHandler
}

func NewAppHandlers(container *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, container.AuthService),
		JobHandler:         NewJobHandler(base, container.JobService),
		ApplicationHandler: NewApplicationHandler(base, container.ApplicationService),
		AdminHandler:       NewAdminHandler(base, container.AdminService),
	}
}
