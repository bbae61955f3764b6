package services

// ServiceContainer bundles the services the handler layer depends on.
type ServiceContainer struct {
	AuthService        AuthService
	JobService         JobService
	ApplicationService ApplicationService
	AdminService       AdminService
}
