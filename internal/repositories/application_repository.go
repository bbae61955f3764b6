package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobportal_backend/internal/models"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and applicant")
)

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id string) (*models.Application, error)
	Update(app *models.Application) error
	Delete(id string) error

	FindByApplicant(applicantID string) ([]models.Application, error)
	FindByJob(jobID string) ([]models.Application, error)
	FindByEmployer(employerID string) ([]models.Application, error)
	FindByJobAndApplicant(jobID, applicantID string) (*models.Application, error)
	FindAll(limit, offset int) ([]models.Application, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(app *models.Application) error {
	err := r.db.Create(app).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateApplication
	}
	return err
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var app models.Application
	err := r.db.Preload("Job").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Update writes the application row only; preloaded Job and Applicant are
// never written back.
func (r *ApplicationRepositoryImpl) Update(app *models.Application) error {
	return r.db.Omit(clause.Associations).Save(app).Error
}

func (r *ApplicationRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Application{}, "id = ?", id).Error
}

func (r *ApplicationRepositoryImpl) FindByApplicant(applicantID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) FindByJob(jobID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

// FindByEmployer returns applications for every job the employer posted.
func (r *ApplicationRepositoryImpl) FindByEmployer(employerID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Job").Preload("Applicant").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.posted_by_id = ?", employerID).
		Order("applications.applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) FindByJobAndApplicant(jobID, applicantID string) (*models.Application, error) {
	var app models.Application
	err := r.db.First(&app, "job_id = ? AND applicant_id = ?", jobID, applicantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindAll(limit, offset int) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Job").Preload("Applicant").
		Order("applied_at DESC").Limit(limit).Offset(offset).
		Find(&apps).Error
	return apps, err
}
