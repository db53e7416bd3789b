package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"hrms/apperror"
	"hrms/models"

	"gorm.io/gorm"
)

type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// Mark records one present/absent entry. Records are create-only: there is
// no update path, and the composite unique index is the final authority on
// one record per employee per day.
func (s *AttendanceService) Mark(ctx context.Context, input AttendanceInput) (*models.Attendance, error) {
	employee, errs, err := s.validate(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}

	record := &models.Attendance{
		EmployeeID: employee.ID,
		Date:       DateOnly(input.Date),
		Status:     input.Status,
	}
	if record.Status == "" {
		record.Status = models.StatusPresent
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, s.mapWriteError(ctx, err, input)
	}

	record.Employee = *employee
	return record, nil
}

// List applies the filter and returns records ordered by date descending,
// then employee name, together with the present/absent breakdown.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) (*AttendanceList, error) {
	var records []models.Attendance
	err := s.filtered(ctx, filter).
		Preload("Employee").
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Order("attendances.date desc, employees.full_name asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	list := &AttendanceList{Records: records, TotalCount: int64(len(records))}
	for _, record := range records {
		switch record.Status {
		case models.StatusPresent:
			list.PresentCount++
		case models.StatusAbsent:
			list.AbsentCount++
		}
	}

	return list, nil
}

// EmployeeSummary returns one employee's attendance history within the
// optional date range, with day counts and the present-day percentage.
func (s *AttendanceService) EmployeeSummary(ctx context.Context, employeeID uint, dateFrom, dateTo *time.Time) (*EmployeeAttendanceSummary, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "employee not found")
		}
		return nil, fmt.Errorf("load employee: %w", err)
	}

	filter := models.AttendanceFilter{
		EmployeeID: &employeeID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	}

	var records []models.Attendance
	if err := s.filtered(ctx, filter).Order("date desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load attendance history: %w", err)
	}

	summary := &EmployeeAttendanceSummary{
		Employee:     employee,
		Records:      records,
		TotalRecords: int64(len(records)),
	}
	for _, record := range records {
		switch record.Status {
		case models.StatusPresent:
			summary.PresentDays++
		case models.StatusAbsent:
			summary.AbsentDays++
		}
	}
	if summary.TotalRecords > 0 {
		summary.AttendancePct = round1(float64(summary.PresentDays) / float64(summary.TotalRecords) * 100)
	}

	return summary, nil
}

// ExportCSV streams the filtered listing as CSV, one row per record.
func (s *AttendanceService) ExportCSV(ctx context.Context, w io.Writer, filter models.AttendanceFilter) error {
	list, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Employee ID", "Name", "Department", "Date", "Status"})
	for _, record := range list.Records {
		writer.Write([]string{
			record.Employee.EmployeeID,
			record.Employee.FullName,
			record.Employee.Department,
			record.Date.Format("2006-01-02"),
			string(record.Status),
		})
	}

	return writer.Error()
}

// filtered builds the AND-composed predicate; each set field narrows the
// result, date bounds inclusive.
func (s *AttendanceService) filtered(ctx context.Context, filter models.AttendanceFilter) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Attendance{})

	if filter.EmployeeID != nil {
		query = query.Where("attendances.employee_id = ?", *filter.EmployeeID)
	}
	if filter.DateFrom != nil {
		query = query.Where("attendances.date >= ?", DateOnly(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		query = query.Where("attendances.date <= ?", DateOnly(*filter.DateTo))
	}
	if filter.Status != nil {
		query = query.Where("attendances.status = ?", *filter.Status)
	}

	return query
}

func (s *AttendanceService) validate(ctx context.Context, input AttendanceInput, excludeRecordID *uint) (*models.Employee, apperror.FieldErrors, error) {
	var errs apperror.FieldErrors

	var employee *models.Employee
	if input.EmployeeID == 0 {
		errs = append(errs, apperror.FieldError{
			Field: "employee", Kind: apperror.KindRequired,
			Message: "Please select an employee.",
		})
	} else {
		var found models.Employee
		if err := s.db.WithContext(ctx).First(&found, input.EmployeeID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, fmt.Errorf("load employee: %w", err)
			}
			errs = append(errs, apperror.FieldError{
				Field: "employee", Kind: apperror.KindInvalidChoice,
				Message: "Select a valid employee.",
			})
		} else {
			employee = &found
		}
	}

	if input.Date.IsZero() {
		errs = append(errs, apperror.FieldError{
			Field: "date", Kind: apperror.KindRequired,
			Message: "Date is required.",
		})
	}

	if input.Status != "" && !input.Status.Valid() {
		errs = append(errs, apperror.FieldError{
			Field: "status", Kind: apperror.KindInvalidChoice,
			Message: "Status must be present or absent.",
		})
	}

	if employee != nil && !input.Date.IsZero() {
		duplicate, err := s.recordExists(ctx, employee.ID, input.Date, excludeRecordID)
		if err != nil {
			return nil, nil, err
		}
		if duplicate {
			errs = append(errs, duplicateAttendanceError(employee, input.Date))
		}
	}

	return employee, errs, nil
}

func (s *AttendanceService) recordExists(ctx context.Context, employeeID uint, date time.Time, excludeRecordID *uint) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("employee_id = ? AND date = ?", employeeID, DateOnly(date))
	if excludeRecordID != nil {
		query = query.Where("id <> ?", *excludeRecordID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check attendance uniqueness: %w", err)
	}
	return count > 0, nil
}

// mapWriteError surfaces a lost race at the store exactly like the
// pre-check duplicate, since the caller cannot tell the two apart.
func (s *AttendanceService) mapWriteError(ctx context.Context, err error, input AttendanceInput) error {
	switch {
	case isDuplicateKey(err):
		var employee models.Employee
		if lookupErr := s.db.WithContext(ctx).First(&employee, input.EmployeeID).Error; lookupErr == nil {
			return apperror.FieldErrors{duplicateAttendanceError(&employee, input.Date)}
		}
		return apperror.New(apperror.CodeConflict, "Attendance for this employee on this date already exists.")
	case isForeignKeyViolation(err):
		return apperror.FieldErrors{{
			Field: "employee", Kind: apperror.KindInvalidChoice,
			Message: "Select a valid employee.",
		}}
	default:
		return fmt.Errorf("save attendance: %w", err)
	}
}

func duplicateAttendanceError(employee *models.Employee, date time.Time) apperror.FieldError {
	return apperror.FieldError{
		Field: "date", Kind: apperror.KindDuplicateAttendance,
		Message: fmt.Sprintf("Attendance for %s on %s already exists.",
			employee.FullName, DateOnly(date).Format("2006-01-02")),
	}
}
