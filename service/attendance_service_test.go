package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"hrms/apperror"
	"hrms/models"
)

func TestMarkAttendanceDefaultsToPresent(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)
	attendance := NewAttendanceService(db)

	jane := mustCreateEmployee(t, employees, "emp001", "Jane Doe", "jane@x.com")

	record, err := attendance.Mark(context.Background(), AttendanceInput{
		EmployeeID: jane.ID,
		Date:       day(t, "2024-01-10"),
	})
	if err != nil {
		t.Fatalf("mark attendance: %v", err)
	}
	if record.Status != models.StatusPresent {
		t.Errorf("expected default status present, got %s", record.Status)
	}
}

func TestMarkAttendanceDuplicateDate(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)
	attendance := NewAttendanceService(db)

	jane := mustCreateEmployee(t, employees, "emp001", "Jane Doe", "jane@x.com")
	first := mustMark(t, attendance, jane.ID, day(t, "2024-01-10"), models.StatusPresent)

	_, err := attendance.Mark(context.Background(), AttendanceInput{
		EmployeeID: jane.ID,
		Date:       day(t, "2024-01-10"),
		Status:     models.StatusAbsent,
	})

	fieldErrs, ok := apperror.AsFieldErrors(err)
	if !ok {
		t.Fatalf("expected field errors, got %v", err)
	}
	if !fieldErrs.Has("date") || fieldErrs[0].Kind != apperror.KindDuplicateAttendance {
		t.Fatalf("expected duplicate_attendance on date, got %v", fieldErrs)
	}

	// The losing submission must not touch the original record.
	var stored models.Attendance
	if err := db.First(&stored, first.ID).Error; err != nil {
		t.Fatalf("reload first record: %v", err)
	}
	if stored.Status != models.StatusPresent {
		t.Errorf("first record changed, expected present, got %s", stored.Status)
	}

	var count int64
	db.Model(&models.Attendance{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single record, got %d", count)
	}
}

func TestMarkAttendanceSameDateOtherEmployee(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)
	attendance := NewAttendanceService(db)

	jane := mustCreateEmployee(t, employees, "emp001", "Jane Doe", "jane@x.com")
	john := mustCreateEmployee(t, employees, "emp002", "John Doe", "john@x.com")

	mustMark(t, attendance, jane.ID, day(t, "2024-01-10"), models.StatusPresent)
	mustMark(t, attendance, john.ID, day(t, "2024-01-10"), models.StatusAbsent)
}

func TestMarkAttendanceUnknownEmployee(t *testing.T) {
	db := newTestDB(t)
	attendance := NewAttendanceService(db)

	_, err := attendance.Mark(context.Background(), AttendanceInput{
		EmployeeID: 41,
		Date:       day(t, "2024-01-10"),
	})

	fieldErrs, ok := apperror.AsFieldErrors(err)
	if !ok || !fieldErrs.Has("employee") {
		t.Fatalf("expected an employee field error, got %v", err)
	}
	if fieldErrs[0].Kind != apperror.KindInvalidChoice {
		t.Errorf("expected invalid_choice, got %s", fieldErrs[0].Kind)
	}
}

func TestMarkAttendanceMissingFields(t *testing.T) {
	db := newTestDB(t)
	attendance := NewAttendanceService(db)

	_, err := attendance.Mark(context.Background(), AttendanceInput{})

	fieldErrs, ok := apperror.AsFieldErrors(err)
	if !ok {
		t.Fatalf("expected field errors, got %v", err)
	}
	if !fieldErrs.Has("employee") || !fieldErrs.Has("date") {
		t.Fatalf("expected employee and date errors, got %v", fieldErrs)
	}
}

func TestListAttendanceDateRangeInclusive(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)
	attendance := NewAttendanceService(db)

	jane := mustCreateEmployee(t, employees, "emp001", "Jane Doe", "jane@x.com")
	for _, d := range []string{"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12"} {
		mustMark(t, attendance, jane.ID, day(t, d), models.StatusPresent)
	}

	from := day(t, "2024-01-09")
	to := day(t, "2024-01-11")
	list, err := attendance.List(context.Background(), models.AttendanceFilter{
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if list.TotalCount != 3 {
		t.Fatalf("expected both bounds inclusive (3 records), got %d", list.TotalCount)
	}

	// Omitting a bound removes that constraint.
	onlyFrom, err := attendance.List(context.Background(), models.AttendanceFilter{DateFrom: &from})
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if onlyFrom.TotalCount != 4 {
		t.Errorf("expected 4 records from 01-09 onward, got %d", onlyFrom.TotalCount)
	}

	onlyTo, err := attendance.List(context.Background(), models.AttendanceFilter{DateTo: &to})
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if onlyTo.TotalCount != 4 {
		t.Errorf("expected 4 records up to 01-11, got %d", onlyTo.TotalCount)
	}
}

func TestListAttendanceFilterComposition(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)
	attendance := NewAttendanceService(db)

	jane := mustCreateEmployee(t, employees, "emp001", "Jane Doe", "jane@x.com")
	john := mustCreateEmployee(t, employees, "emp002", "John Doe", "john@x.com")

	mustMark(t, attendance, jane.ID, day(t, "2024-01-10"), models.StatusPresent)
	mustMark(t, attendance, jane.ID, day(t, "2024-01-11"), models.StatusAbsent)
	mustMark(t, attendance, john.ID, day(t, "2024-01-10"), models.StatusAbsent)
	mustMark(t, attendance, john.ID, day(t, "2024-01-11"), models.StatusPresent)

	everything, err := attendance.List(context.Background(), models.AttendanceFilter{})
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if everything.TotalCount != 4 || everything.PresentCount != 2 || everything.AbsentCount != 2 {
		t.Fatalf("unexpected counts: %+v", everything)
	}

	absent := models.StatusAbsent
	filtered, err := attendance.List(context.Background(), models.AttendanceFilter{
		EmployeeID: &jane.ID,
		Status:     &absent,
	})
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if filtered.TotalCount != 1 {
		t.Fatalf("expected exactly Jane's absent day, got %d records", filtered.TotalCount)
	}
	if filtered.Records[0].EmployeeID != jane.ID || filtered.Records[0].Status != models.StatusAbsent {
		t.Errorf("wrong record matched: %+v", filtered.Records[0])
	}
}

func TestListAttendanceOrdering(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)
	attendance := NewAttendanceService(db)

	zoe := mustCreateEmployee(t, employees, "emp001", "Zoe Field", "zoe@x.com")
	adam := mustCreateEmployee(t, employees, "emp002", "Adam Field", "adam@x.com")

	mustMark(t, attendance, zoe.ID, day(t, "2024-01-10"), models.StatusPresent)
	mustMark(t, attendance, adam.ID, day(t, "2024-01-10"), models.StatusPresent)
	mustMark(t, attendance, zoe.ID, day(t, "2024-01-12"), models.StatusPresent)

	list, err := attendance.List(context.Background(), models.AttendanceFilter{})
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(list.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list.Records))
	}

	// Newest date first, then employee name within the same day.
	if !list.Records[0].Date.After(list.Records[1].Date) {
		t.Errorf("expected date descending, got %v then %v", list.Records[0].Date, list.Records[1].Date)
	}
	if list.Records[1].EmployeeID != adam.ID || list.Records[2].EmployeeID != zoe.ID {
		t.Errorf("expected name ascending within a day, got %d then %d",
			list.Records[1].EmployeeID, list.Records[2].EmployeeID)
	}
}

func TestEmployeeSummaryPercentage(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)
	attendance := NewAttendanceService(db)

	jane := mustCreateEmployee(t, employees, "emp001", "Jane Doe", "jane@x.com")
	mustMark(t, attendance, jane.ID, day(t, "2024-01-10"), models.StatusPresent)
	mustMark(t, attendance, jane.ID, day(t, "2024-01-11"), models.StatusPresent)
	mustMark(t, attendance, jane.ID, day(t, "2024-01-12"), models.StatusAbsent)

	summary, err := attendance.EmployeeSummary(context.Background(), jane.ID, nil, nil)
	if err != nil {
		t.Fatalf("employee summary: %v", err)
	}
	if summary.TotalRecords != 3 || summary.PresentDays != 2 || summary.AbsentDays != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.AttendancePct != 66.7 {
		t.Errorf("expected 66.7, got %v", summary.AttendancePct)
	}

	from := day(t, "2024-01-11")
	bounded, err := attendance.EmployeeSummary(context.Background(), jane.ID, &from, nil)
	if err != nil {
		t.Fatalf("bounded summary: %v", err)
	}
	if bounded.TotalRecords != 2 || bounded.AttendancePct != 50.0 {
		t.Errorf("unexpected bounded summary: %+v", bounded)
	}
}

func TestEmployeeSummaryNoRecords(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)
	attendance := NewAttendanceService(db)

	jane := mustCreateEmployee(t, employees, "emp001", "Jane Doe", "jane@x.com")

	summary, err := attendance.EmployeeSummary(context.Background(), jane.ID, nil, nil)
	if err != nil {
		t.Fatalf("employee summary: %v", err)
	}
	if summary.AttendancePct != 0 {
		t.Errorf("expected 0 with no records, got %v", summary.AttendancePct)
	}
}

func TestEmployeeSummaryNotFound(t *testing.T) {
	db := newTestDB(t)
	attendance := NewAttendanceService(db)

	_, err := attendance.EmployeeSummary(context.Background(), 9999, nil, nil)
	if apperror.GetCode(err) != apperror.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)
	attendance := NewAttendanceService(db)

	jane := mustCreateEmployee(t, employees, "emp001", "Jane Doe", "jane@x.com")
	mustMark(t, attendance, jane.ID, day(t, "2024-01-10"), models.StatusPresent)

	var buf bytes.Buffer
	if err := attendance.ExportCSV(context.Background(), &buf, models.AttendanceFilter{}); err != nil {
		t.Fatalf("export csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "Employee ID,Name,Department,Date,Status" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "EMP001,Jane Doe,,2024-01-10,present" {
		t.Errorf("unexpected row: %q", lines[1])
	}
}
