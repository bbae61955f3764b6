package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	apps := r.Group("/applications")
	apps.Use(middleware.AuthMiddleware())
	{
		apps.POST("", middleware.RequireRoles(models.UserRoleApplicant), h.Apply)
		apps.GET("", middleware.RequireRoles(models.UserRoleApplicant), h.ListMine)
		apps.GET("/:id", h.Get)
	}

	employer := r.Group("/employer/applications")
	employer.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin))
	{
		employer.GET("", h.ListForEmployer)
		employer.PUT("/:id", h.UpdateStatus)
	}
}

// Apply accepts a multipart form: resume file plus jobId/email/phone fields.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	resume, err := c.FormFile("resume")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Resume file is required"))
		return
	}

	app, err := h.applicationService.Apply(userID, &req, resume)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListByApplicant(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, role, ok := h.Caller(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Get(userID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) ListForEmployer(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListByEmployer(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, role, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateStatus(userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
