package services

import (
	"fmt"
	"mime/multipart"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/storage"
)

type ApplicationService interface {
	Apply(applicantID string, req *dto.CreateApplicationRequest, resume *multipart.FileHeader) (*models.Application, error)
	Get(callerID string, callerRole models.UserRole, id string) (*models.Application, error)
	ListByApplicant(applicantID string) ([]models.Application, error)
	ListByEmployer(employerID string) ([]models.Application, error)

	UpdateStatus(callerID string, callerRole models.UserRole, id string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
}

type ApplicationServiceImpl struct {
	appRepo  repositories.ApplicationRepository
	jobRepo  repositories.JobRepository
	files    storage.Storage
	notifier email.Provider
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	files storage.Storage,
	notifier email.Provider,
) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		files:    files,
		notifier: notifier,
	}
}

// Apply creates the initial record in Applied status. One application per
// (job, applicant); the repository's unique index backs the check.
func (s *ApplicationServiceImpl) Apply(applicantID string, req *dto.CreateApplicationRequest, resume *multipart.FileHeader) (*models.Application, error) {
	if resume == nil {
		return nil, apperrors.NewBadRequestError("Resume file is required")
	}

	job, err := s.jobRepo.FindByID(req.JobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.ErrJobNotActive
	}

	if _, err := s.appRepo.FindByJobAndApplicant(req.JobID, applicantID); err == nil {
		return nil, apperrors.ErrAlreadyApplied
	} else if !apperrors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	resumePath, err := s.files.Save(resume)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	app := &models.Application{
		JobID:       req.JobID,
		ApplicantID: applicantID,
		ResumePath:  resumePath,
		CoverLetter: req.CoverLetter,
		Email:       req.Email,
		Phone:       req.Phone,
		Status:      models.ApplicationStatusApplied,
	}

	if err := s.appRepo.Create(app); err != nil {
		s.files.Delete(resumePath)
		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}
	return app, nil
}

// Get returns an application to its applicant, the owning employer or admin.
func (s *ApplicationServiceImpl) Get(callerID string, callerRole models.UserRole, id string) (*models.Application, error) {
	app, err := s.findApplication(id)
	if err != nil {
		return nil, err
	}
	if callerID != app.ApplicantID && !s.canManage(callerID, callerRole, app) {
		return nil, apperrors.ErrForbidden
	}
	return app, nil
}

func (s *ApplicationServiceImpl) ListByApplicant(applicantID string) ([]models.Application, error) {
	apps, err := s.appRepo.FindByApplicant(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

func (s *ApplicationServiceImpl) ListByEmployer(employerID string) ([]models.Application, error) {
	apps, err := s.appRepo.FindByEmployer(employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

// UpdateStatus runs the application status machine. Only the employer owning
// the referenced job, or an admin, may transition; re-asserting the same
// terminal status is a no-op success.
func (s *ApplicationServiceImpl) UpdateStatus(callerID string, callerRole models.UserRole, id string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	app, err := s.findApplication(id)
	if err != nil {
		return nil, err
	}
	if !s.canManage(callerID, callerRole, app) {
		return nil, apperrors.ErrForbidden
	}

	target, err := models.ParseApplicationStatus(req.Status)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidStatus, err.Error(), 400)
	}

	if target == app.Status && target.Terminal() {
		return app, nil
	}

	if !app.Status.CanTransition(target) {
		return nil, apperrors.InvalidTransition(fmt.Sprintf("cannot move application from %s to %s", app.Status, target))
	}

	details := models.InterviewDetails{
		Date:     req.InterviewDate,
		Time:     req.InterviewTime,
		Location: req.InterviewLocation,
	}
	if err := models.ValidateTransition(app.Status, target, details); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	app.Status = target
	if target == models.ApplicationStatusInterview {
		app.InterviewDate = details.Date
		app.InterviewTime = details.Time
		app.InterviewLocation = details.Location
	}

	if err := s.appRepo.Update(app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notify(app, target, details)
	return app, nil
}

func (s *ApplicationServiceImpl) notify(app *models.Application, status models.ApplicationStatus, details models.InterviewDetails) {
	if s.notifier == nil || app.Job == nil {
		return
	}
	go func() {
		var err error
		switch {
		case status == models.ApplicationStatusInterview:
			err = s.notifier.SendInterviewInvite(app.Email, app.Job, details)
		case status.Terminal():
			err = s.notifier.SendStatusUpdate(app.Email, app.Job, status)
		}
		if err != nil {
			logger.Warn("failed to send application notification", "error", err, "application_id", app.ID)
		}
	}()
}

func (s *ApplicationServiceImpl) findApplication(id string) (*models.Application, error) {
	app, err := s.appRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return app, nil
}

func (s *ApplicationServiceImpl) canManage(callerID string, callerRole models.UserRole, app *models.Application) bool {
	if app.Job == nil {
		job, err := s.jobRepo.FindByID(app.JobID)
		if err != nil {
			return false
		}
		app.Job = job
	}
	return auth.CanManageJob(callerID, callerRole, app.Job.PostedByID)
}
