package service

import (
	"context"
	"testing"
	"time"

	"hrms/database"
	"hrms/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access sql.DB: %v", err)
	}
	// A pooled second connection would see its own empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

func mustCreateEmployee(t *testing.T, svc *EmployeeService, employeeID, fullName, email string) *models.Employee {
	t.Helper()

	employee, err := svc.Create(context.Background(), EmployeeInput{
		EmployeeID: employeeID,
		FullName:   fullName,
		Email:      email,
	})
	if err != nil {
		t.Fatalf("create employee %s: %v", employeeID, err)
	}
	return employee
}

func mustMark(t *testing.T, svc *AttendanceService, employeeID uint, date time.Time, status models.AttendanceStatus) *models.Attendance {
	t.Helper()

	record, err := svc.Mark(context.Background(), AttendanceInput{
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
	})
	if err != nil {
		t.Fatalf("mark attendance for employee %d on %s: %v", employeeID, date.Format("2006-01-02"), err)
	}
	return record
}

func day(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}
