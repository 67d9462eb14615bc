package postgres

import (
	"github.com/fitcoach/trainer-service/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	student    repositories.StudentRepository
	assessment repositories.AssessmentRepository
	user       repositories.UserRepository
}

// NewRepository builds the PostgreSQL-backed repository aggregate.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		student:    NewStudentPostgreSQL(db),
		assessment: NewAssessmentPostgreSQL(db),
		user:       NewUserPostgreSQL(db),
	}
}

func (r *gormRepository) Student() repositories.StudentRepository {
	return r.student
}

func (r *gormRepository) Assessment() repositories.AssessmentRepository {
	return r.assessment
}

func (r *gormRepository) User() repositories.UserRepository {
	return r.user
}
