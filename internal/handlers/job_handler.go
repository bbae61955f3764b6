package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	{
		jobs.GET("", h.List)
		jobs.GET("/browse", middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleApplicant), h.Browse)
		jobs.GET("/:id", h.Get)
		jobs.POST("", middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployer), h.Create)
	}

	employer := r.Group("/employer/jobs")
	employer.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin))
	{
		employer.GET("", h.ListMine)
		employer.PUT("/:id", h.Update)
		employer.PUT("/:id/status", h.UpdateStatus)
		employer.DELETE("/:id", h.Delete)
	}
}

func filterFromQuery(c *gin.Context) repositories.JobFilter {
	return repositories.JobFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
	}
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobService.List(filterFromQuery(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Browse lists jobs with the caller's application status attached.
func (h *JobHandler) Browse(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.Browse(userID, filterFromQuery(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobService.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListMine(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListByEmployer(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, role, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) UpdateStatus(c *gin.Context) {
	userID, role, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateStatus(userID, role, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, role, ok := h.Caller(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(userID, role, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
