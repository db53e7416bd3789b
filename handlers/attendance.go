package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hrms/apperror"
	"hrms/models"
	"hrms/service"
)

type AttendanceHandler struct {
	attendance *service.AttendanceService
}

func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}

	list, err := h.attendance.List(r.Context(), *filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

type markAttendanceRequest struct {
	EmployeeID uint   `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req markAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid request body"})
		return
	}

	input := service.AttendanceInput{
		EmployeeID: req.EmployeeID,
		Status:     models.AttendanceStatus(req.Status),
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			respondError(w, apperror.FieldErrors{{
				Field: "date", Kind: apperror.KindInvalidFormat,
				Message: "Date must be in YYYY-MM-DD format.",
			}})
			return
		}
		input.Date = date
	}

	record, err := h.attendance.Mark(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"message":    fmt.Sprintf("Attendance marked for %s!", record.Employee.FullName),
		"attendance": record,
	})
}

// Export streams the filtered listing as a CSV attachment.
func (h *AttendanceHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := h.attendance.ExportCSV(r.Context(), w, *filter); err != nil {
		// Headers are already out; the broken download is all we can offer.
		fmt.Fprintf(w, "export failed: %v", err)
	}
}

func parseFilter(r *http.Request) (*models.AttendanceFilter, error) {
	filter := &models.AttendanceFilter{}

	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, apperror.New(apperror.CodeValidation, "employee_id must be a positive integer")
		}
		employeeID := uint(id)
		filter.EmployeeID = &employeeID
	}

	var err error
	if filter.DateFrom, err = parseDateQuery(r, "date_from"); err != nil {
		return nil, err
	}
	if filter.DateTo, err = parseDateQuery(r, "date_to"); err != nil {
		return nil, err
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.AttendanceStatus(raw)
		if !status.Valid() {
			return nil, apperror.New(apperror.CodeValidation, "status must be present or absent")
		}
		filter.Status = &status
	}

	return filter, nil
}
