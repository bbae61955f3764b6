package services

import (
	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
)

type AdminService interface {
	ListUsers(limit, offset int) ([]models.User, int64, error)
	ListJobs(limit, offset int) ([]models.Job, error)
	ListApplications(limit, offset int) ([]models.Application, error)
	DeleteUser(adminID, userID string) error
	DeleteJob(jobID string) error
}

type AdminServiceImpl struct {
	userRepo repositories.UserRepository
	jobRepo  repositories.JobRepository
	appRepo  repositories.ApplicationRepository
}

func NewAdminService(
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
) AdminService {
	return &AdminServiceImpl{userRepo: userRepo, jobRepo: jobRepo, appRepo: appRepo}
}

func (s *AdminServiceImpl) ListUsers(limit, offset int) ([]models.User, int64, error) {
	users, err := s.userRepo.FindAll(limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return users, total, nil
}

func (s *AdminServiceImpl) ListJobs(limit, offset int) ([]models.Job, error) {
	jobs, err := s.jobRepo.FindAll(limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *AdminServiceImpl) ListApplications(limit, offset int) ([]models.Application, error) {
	apps, err := s.appRepo.FindAll(limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

// DeleteUser removes a user and, through the repository, their jobs and
// applications. Admins cannot delete themselves.
func (s *AdminServiceImpl) DeleteUser(adminID, userID string) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) DeleteJob(jobID string) error {
	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}
	if err := s.jobRepo.Delete(jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
