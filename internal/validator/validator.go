package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/fitcoach/trainer-service/internal/errors"
	"github.com/fitcoach/trainer-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps struct-tag validation with the service's custom rules.
type Validator struct {
	structValidator *validator.Validate
}

// New creates the shared validator instance.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags and converts failures into the
// shared ValidationErrors type.
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("student_status", validateStudentStatus)
	validate.RegisterValidation("user_role", validateUserRole)

	// Report the json field name in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateStudentStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.StudentStatus{
		models.StudentActive,
		models.StudentInactive,
		models.StudentArchived,
	}

	value := fl.Field().String()
	for _, status := range validStatuses {
		if string(status) == value {
			return true
		}
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleTrainer,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, role := range validRoles {
		if string(role) == value {
			return true
		}
	}
	return false
}
