package service

import (
	"context"
	"fmt"
	"time"

	"hrms/models"

	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Summary computes the dashboard numbers for the given day. The attendance
// rate is today's present count over the total headcount; the week window
// runs from Monday through today, both inclusive.
func (s *DashboardService) Summary(ctx context.Context, today time.Time) (*DashboardSummary, error) {
	today = DateOnly(today)
	summary := &DashboardSummary{}

	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Employee{}).Count(&summary.TotalEmployees).Error; err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}

	if err := db.Model(&models.Attendance{}).Where("date = ?", today).
		Count(&summary.TodayTotal).Error; err != nil {
		return nil, fmt.Errorf("count today's attendance: %w", err)
	}
	if err := db.Model(&models.Attendance{}).Where("date = ? AND status = ?", today, models.StatusPresent).
		Count(&summary.TodayPresent).Error; err != nil {
		return nil, fmt.Errorf("count today's present: %w", err)
	}
	if err := db.Model(&models.Attendance{}).Where("date = ? AND status = ?", today, models.StatusAbsent).
		Count(&summary.TodayAbsent).Error; err != nil {
		return nil, fmt.Errorf("count today's absent: %w", err)
	}

	if summary.TotalEmployees > 0 {
		summary.AttendanceRatePct = round1(float64(summary.TodayPresent) / float64(summary.TotalEmployees) * 100)
	}

	weekStart := StartOfWeek(today)
	if err := db.Model(&models.Attendance{}).
		Where("date >= ? AND date <= ? AND status = ?", weekStart, today, models.StatusPresent).
		Count(&summary.WeekPresent).Error; err != nil {
		return nil, fmt.Errorf("count week's present: %w", err)
	}
	if err := db.Model(&models.Attendance{}).
		Where("date >= ? AND date <= ? AND status = ?", weekStart, today, models.StatusAbsent).
		Count(&summary.WeekAbsent).Error; err != nil {
		return nil, fmt.Errorf("count week's absent: %w", err)
	}

	if err := db.Order("created_at desc").Limit(5).Find(&summary.RecentEmployees).Error; err != nil {
		return nil, fmt.Errorf("load recent employees: %w", err)
	}

	err := db.Preload("Employee").
		Order("date desc, created_at desc").
		Limit(10).
		Find(&summary.RecentAttendance).Error
	if err != nil {
		return nil, fmt.Errorf("load recent attendance: %w", err)
	}

	return summary, nil
}
