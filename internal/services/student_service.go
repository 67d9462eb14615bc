package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitcoach/trainer-service/internal/models"
	"github.com/fitcoach/trainer-service/internal/repositories"
	"github.com/fitcoach/trainer-service/internal/validator"
	"gorm.io/gorm"
)

// StudentService manages a trainer's student records
type StudentService interface {
	Create(ctx context.Context, req *CreateStudentRequest, trainerID string) (*models.Student, error)
	GetByID(ctx context.Context, id uint, userID string) (*models.Student, error)
	ListByTrainer(ctx context.Context, trainerID string, filters repositories.StudentFilters) (*StudentListResponse, error)
	Update(ctx context.Context, id uint, req *UpdateStudentRequest, userID string) (*models.Student, error)
	Delete(ctx context.Context, id uint, userID string) error
	CanAccess(ctx context.Context, studentID uint, userID string) (bool, error)
}

type CreateStudentRequest struct {
	Name      string     `json:"name" validate:"required,min=1,max=100"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Phone     *string    `json:"phone" validate:"omitempty,max=20"`
	BirthDate *time.Time `json:"birth_date"`
	Gender    *string    `json:"gender" validate:"omitempty,max=20"`
	HeightCm  float64    `json:"height_cm" validate:"omitempty,min=0,max=300"`
	Goal      string     `json:"goal" validate:"omitempty,max=500"`
	Notes     *string    `json:"notes"`
}

type UpdateStudentRequest struct {
	Name      *string               `json:"name" validate:"omitempty,min=1,max=100"`
	Email     *string               `json:"email" validate:"omitempty,email"`
	Phone     *string               `json:"phone" validate:"omitempty,max=20"`
	BirthDate *time.Time            `json:"birth_date"`
	Gender    *string               `json:"gender" validate:"omitempty,max=20"`
	HeightCm  *float64              `json:"height_cm" validate:"omitempty,min=0,max=300"`
	Goal      *string               `json:"goal" validate:"omitempty,max=500"`
	Status    *models.StudentStatus `json:"status" validate:"omitempty,student_status"`
	Notes     *string               `json:"notes"`
}

type StudentListResponse struct {
	Students []*models.Student `json:"students"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest, trainerID string) (*models.Student, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	// The gateway forwards any authenticated subject; only registered,
	// active trainers and admins may take on students.
	user, err := s.repo.User().GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewPermissionError(trainerID, 0, "student", "create", "unknown user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, NewPermissionError(trainerID, 0, "student", "create", "user is inactive")
	}
	if user.Role != models.RoleTrainer && user.Role != models.RoleAdmin {
		return nil, NewPermissionError(trainerID, 0, "student", "create", "role cannot manage students")
	}

	student := &models.Student{
		TrainerID: trainerID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
		HeightCm:  req.HeightCm,
		Goal:      req.Goal,
		Notes:     req.Notes,
		Status:    models.StudentActive,
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info("Student created", "student_id", student.ID, "trainer_id", trainerID)
	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, id uint, userID string) (*models.Student, error) {
	canAccess, err := s.CanAccess(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, NewPermissionError(userID, id, "student", "view", "not the owning trainer")
	}

	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *studentService) ListByTrainer(ctx context.Context, trainerID string, filters repositories.StudentFilters) (*StudentListResponse, error) {
	students, total, err := s.repo.Student().GetByTrainer(ctx, trainerID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &StudentListResponse{
		Students: students,
		Total:    total,
		Limit:    filters.Limit,
		Offset:   filters.Offset,
	}, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req *UpdateStudentRequest, userID string) (*models.Student, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	student, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = req.Email
	}
	if req.Phone != nil {
		student.Phone = req.Phone
	}
	if req.BirthDate != nil {
		student.BirthDate = req.BirthDate
	}
	if req.Gender != nil {
		student.Gender = req.Gender
	}
	if req.HeightCm != nil {
		student.HeightCm = *req.HeightCm
	}
	if req.Goal != nil {
		student.Goal = *req.Goal
	}
	if req.Status != nil {
		student.Status = *req.Status
	}
	if req.Notes != nil {
		student.Notes = req.Notes
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	s.logger.Info("Student updated", "student_id", id, "user_id", userID)
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id uint, userID string) error {
	canAccess, err := s.CanAccess(ctx, id, userID)
	if err != nil {
		return err
	}
	if !canAccess {
		return NewPermissionError(userID, id, "student", "delete", "not the owning trainer")
	}

	if err := s.repo.Student().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.logger.Info("Student deleted", "student_id", id, "user_id", userID)
	return nil
}

func (s *studentService) CanAccess(ctx context.Context, studentID uint, userID string) (bool, error) {
	return s.repo.Student().CanAccess(ctx, studentID, userID)
}
