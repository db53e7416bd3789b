package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hrms/service"
)

type EmployeeHandler struct {
	employees  *service.EmployeeService
	attendance *service.AttendanceService
}

func NewEmployeeHandler(employees *service.EmployeeService, attendance *service.AttendanceService) *EmployeeHandler {
	return &EmployeeHandler{
		employees:  employees,
		attendance: attendance,
	}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	employees, total, err := h.employees.List(r.Context(), search)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"employees":   employees,
		"count":       len(employees),
		"total_count": total,
		"search":      search,
	})
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid request body"})
		return
	}

	employee, err := h.employees.Create(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"message":  fmt.Sprintf("Employee %s added successfully!", employee.FullName),
		"employee": employee,
	})
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	employee, err := h.employees.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var input service.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid request body"})
		return
	}

	employee, err := h.employees.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  fmt.Sprintf("Employee %s updated successfully!", employee.FullName),
		"employee": employee,
	})
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	employee, err := h.employees.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Employee %s deleted successfully!", employee.FullName),
	})
}

// Attendance serves one employee's attendance history with day counts and
// the present percentage, optionally bounded by date_from/date_to.
func (h *EmployeeHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	dateFrom, err := parseDateQuery(r, "date_from")
	if err != nil {
		respondError(w, err)
		return
	}
	dateTo, err := parseDateQuery(r, "date_to")
	if err != nil {
		respondError(w, err)
		return
	}

	summary, err := h.attendance.EmployeeSummary(r.Context(), id, dateFrom, dateTo)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
