package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"hrms/apperror"
	"hrms/models"

	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

type EmployeeService struct {
	db *gorm.DB
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db}
}

func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*models.Employee, error) {
	normalized, errs, err := s.validate(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}

	employee := &models.Employee{
		EmployeeID: normalized.EmployeeID,
		FullName:   normalized.FullName,
		Email:      normalized.Email,
		Department: normalized.Department,
	}

	if err := s.db.WithContext(ctx).Create(employee).Error; err != nil {
		return nil, s.mapWriteError(ctx, err, input, nil)
	}

	return employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uint, input EmployeeInput) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "employee not found")
		}
		return nil, fmt.Errorf("load employee: %w", err)
	}

	normalized, errs, err := s.validate(ctx, input, &id)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}

	employee.EmployeeID = normalized.EmployeeID
	employee.FullName = normalized.FullName
	employee.Email = normalized.Email
	employee.Department = normalized.Department

	if err := s.db.WithContext(ctx).Save(&employee).Error; err != nil {
		return nil, s.mapWriteError(ctx, err, input, &id)
	}

	return &employee, nil
}

// Delete removes an employee; the store's cascade rule removes all of its
// attendance records in the same transaction.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Employee{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.CodeNotFound, "employee not found")
	}
	return nil
}

func (s *EmployeeService) Get(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "employee not found")
		}
		return nil, fmt.Errorf("load employee: %w", err)
	}
	return &employee, nil
}

// List returns employees ordered by full name. A search term matches as a
// case-insensitive substring against id, name, email or department. The
// returned count is the unfiltered total.
func (s *EmployeeService) List(ctx context.Context, search string) ([]models.Employee, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Employee{})

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(employee_id) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(department) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var employees []models.Employee
	if err := query.Order("full_name asc").Find(&employees).Error; err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	return employees, total, nil
}

// validate runs every field check before returning so the caller gets the
// full error list in one pass, the way a form renders it. All checks are
// read-only; excludeID skips the record being updated in uniqueness checks.
func (s *EmployeeService) validate(ctx context.Context, input EmployeeInput, excludeID *uint) (EmployeeInput, apperror.FieldErrors, error) {
	var errs apperror.FieldErrors
	out := EmployeeInput{Department: strings.TrimSpace(input.Department)}

	employeeID := strings.TrimSpace(input.EmployeeID)
	if employeeID == "" {
		errs = append(errs, apperror.FieldError{
			Field: "employee_id", Kind: apperror.KindRequired,
			Message: "Employee ID is required.",
		})
	} else {
		taken, err := s.columnTaken(ctx, "employee_id", employeeID, excludeID)
		if err != nil {
			return out, nil, err
		}
		if taken {
			errs = append(errs, apperror.FieldError{
				Field: "employee_id", Kind: apperror.KindDuplicate,
				Message: "An employee with this ID already exists.",
			})
		}
		out.EmployeeID = strings.ToUpper(employeeID)
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		errs = append(errs, apperror.FieldError{
			Field: "full_name", Kind: apperror.KindRequired,
			Message: "Full name is required.",
		})
	} else if utf8.RuneCountInString(fullName) < 2 {
		errs = append(errs, apperror.FieldError{
			Field: "full_name", Kind: apperror.KindTooShort,
			Message: "Full name must be at least 2 characters.",
		})
	}
	out.FullName = fullName

	email := strings.ToLower(strings.TrimSpace(input.Email))
	switch {
	case email == "":
		errs = append(errs, apperror.FieldError{
			Field: "email", Kind: apperror.KindRequired,
			Message: "Email address is required.",
		})
	case !emailPattern.MatchString(email):
		errs = append(errs, apperror.FieldError{
			Field: "email", Kind: apperror.KindInvalidFormat,
			Message: "Please enter a valid email address.",
		})
	default:
		taken, err := s.columnTaken(ctx, "email", email, excludeID)
		if err != nil {
			return out, nil, err
		}
		if taken {
			errs = append(errs, apperror.FieldError{
				Field: "email", Kind: apperror.KindDuplicate,
				Message: "An employee with this email already exists.",
			})
		}
	}
	out.Email = email

	return out, errs, nil
}

func (s *EmployeeService) columnTaken(ctx context.Context, column, value string, excludeID *uint) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.Employee{}).
		Where("LOWER("+column+") = LOWER(?)", value)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s uniqueness: %w", column, err)
	}
	return count > 0, nil
}

// mapWriteError turns a unique-index loser into the same field-keyed error
// the pre-check would have produced, so a lost race and an ordinary
// duplicate look identical to the caller.
func (s *EmployeeService) mapWriteError(ctx context.Context, err error, input EmployeeInput, excludeID *uint) error {
	if !isDuplicateKey(err) {
		return fmt.Errorf("save employee: %w", err)
	}
	if _, errs, verr := s.validate(ctx, input, excludeID); verr == nil && len(errs) > 0 {
		return errs
	}
	return apperror.New(apperror.CodeConflict, "An employee with these details already exists.")
}
