package services

import (
	"encoding/json"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

type JobService interface {
	Create(employerID string, req *dto.CreateJobRequest) (*models.Job, error)
	Get(jobID string) (*models.Job, error)
	List(filter repositories.JobFilter) ([]models.Job, error)
	Browse(applicantID string, filter repositories.JobFilter) ([]dto.BrowseJob, error)
	ListByEmployer(employerID string) ([]models.Job, error)

	Update(callerID string, callerRole models.UserRole, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	UpdateStatus(callerID string, callerRole models.UserRole, jobID string, status string) (*models.Job, error)
	Delete(callerID string, callerRole models.UserRole, jobID string) error
}

type JobServiceImpl struct {
	jobRepo repositories.JobRepository
	appRepo repositories.ApplicationRepository
}

func NewJobService(jobRepo repositories.JobRepository, appRepo repositories.ApplicationRepository) JobService {
	return &JobServiceImpl{jobRepo: jobRepo, appRepo: appRepo}
}

func (s *JobServiceImpl) Create(employerID string, req *dto.CreateJobRequest) (*models.Job, error) {
	if req.Salary <= 0 {
		return nil, apperrors.ErrInvalidSalary
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		Status:      models.JobStatusActive,
		PostedByID:  employerID,
	}
	if len(req.Tags) > 0 {
		raw, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Tags = raw
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Get(jobID string) (*models.Job, error) {
	return s.findJob(jobID)
}

// List is the public board: only Active jobs are visible.
func (s *JobServiceImpl) List(filter repositories.JobFilter) ([]models.Job, error) {
	filter.Status = models.JobStatusActive
	jobs, err := s.jobRepo.Find(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

// Browse lists active jobs annotated with the applicant's own application
// status.
func (s *JobServiceImpl) Browse(applicantID string, filter repositories.JobFilter) ([]dto.BrowseJob, error) {
	filter.Status = models.JobStatusActive
	jobs, err := s.jobRepo.Find(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	apps, err := s.appRepo.FindByApplicant(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	statusByJob := make(map[string]models.ApplicationStatus, len(apps))
	for _, a := range apps {
		statusByJob[a.JobID] = a.Status
	}

	out := make([]dto.BrowseJob, 0, len(jobs))
	for _, j := range jobs {
		bj := dto.BrowseJob{Job: j}
		if st, ok := statusByJob[j.ID]; ok {
			bj.Applied = true
			bj.ApplicationStatus = st
		}
		out = append(out, bj)
	}
	return out, nil
}

func (s *JobServiceImpl) ListByEmployer(employerID string) ([]models.Job, error) {
	jobs, err := s.jobRepo.FindByEmployer(employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *JobServiceImpl) Update(callerID string, callerRole models.UserRole, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.authorizeJob(callerID, callerRole, jobID)
	if err != nil {
		return nil, err
	}

	if req.Salary != nil {
		if *req.Salary <= 0 {
			return nil, apperrors.ErrInvalidSalary
		}
		job.Salary = *req.Salary
	}
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Tags != nil {
		raw, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Tags = raw
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// UpdateStatus applies the job status machine: any distinct pair of known
// statuses is legal, including reopening.
func (s *JobServiceImpl) UpdateStatus(callerID string, callerRole models.UserRole, jobID string, status string) (*models.Job, error) {
	job, err := s.authorizeJob(callerID, callerRole, jobID)
	if err != nil {
		return nil, err
	}

	target, err := models.ParseJobStatus(status)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidStatus, err.Error(), 400)
	}

	if target == job.Status {
		// no-op; return current state unchanged
		return job, nil
	}
	if !job.Status.CanTransition(target) {
		return nil, apperrors.InvalidTransition("job cannot transition from " + string(job.Status) + " to " + string(target))
	}

	job.Status = target
	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// Delete removes the job; applications cascade in the repository.
func (s *JobServiceImpl) Delete(callerID string, callerRole models.UserRole, jobID string) error {
	if _, err := s.authorizeJob(callerID, callerRole, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) findJob(jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) authorizeJob(callerID string, callerRole models.UserRole, jobID string) (*models.Job, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageJob(callerID, callerRole, job.PostedByID) {
		return nil, apperrors.ErrForbidden
	}
	return job, nil
}
