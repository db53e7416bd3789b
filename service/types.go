package service

import (
	"errors"
	"math"
	"time"

	"hrms/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// EmployeeInput carries raw form values; the validation layer trims and
// normalizes them before anything touches the store.
type EmployeeInput struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type AttendanceInput struct {
	EmployeeID uint
	Date       time.Time
	Status     models.AttendanceStatus
}

// AttendanceList is a filtered listing plus its present/absent breakdown.
type AttendanceList struct {
	Records      []models.Attendance `json:"records"`
	TotalCount   int64               `json:"total_count"`
	PresentCount int64               `json:"present_count"`
	AbsentCount  int64               `json:"absent_count"`
}

type DashboardSummary struct {
	TotalEmployees    int64               `json:"total_employees"`
	TodayPresent      int64               `json:"today_present"`
	TodayAbsent       int64               `json:"today_absent"`
	TodayTotal        int64               `json:"today_total"`
	AttendanceRatePct float64             `json:"attendance_rate_pct"`
	WeekPresent       int64               `json:"week_present"`
	WeekAbsent        int64               `json:"week_absent"`
	RecentEmployees   []models.Employee   `json:"recent_employees"`
	RecentAttendance  []models.Attendance `json:"recent_attendance"`
}

type EmployeeAttendanceSummary struct {
	Employee      models.Employee     `json:"employee"`
	Records       []models.Attendance `json:"records"`
	TotalRecords  int64               `json:"total_records"`
	PresentDays   int64               `json:"present_days"`
	AbsentDays    int64               `json:"absent_days"`
	AttendancePct float64             `json:"attendance_pct"`
}

// DateOnly truncates to a calendar date in UTC so that stored dates and
// filter bounds always compare on the same midnight instant.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := DateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
