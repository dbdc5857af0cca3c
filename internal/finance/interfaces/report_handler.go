package interfaces

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/application"
)

type ReportServiceInterface interface {
	BuildMonthlyReport(userID string, year int, month time.Month) (*application.MonthlyReport, error)
}

type ReportHandler struct {
	service      ReportServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewReportHandler(
	service ReportServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ReportHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ReportHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// GetMonthlyReport returns the per-category breakdown for one month.
// Defaults to the previous month when year and month are not given.
func (h *ReportHandler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")

	previousMonth := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	year := previousMonth.Year()
	month := previousMonth.Month()

	if yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 2000 || parsed > 2200 {
			h.respondError(w, http.StatusBadRequest, "Invalid year value")
			return
		}
		year = parsed
	}
	if monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			h.respondError(w, http.StatusBadRequest, "Invalid month value")
			return
		}
		month = time.Month(parsed)
	}

	report, err := h.service.BuildMonthlyReport(userID, year, month)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build monthly report")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Monthly report built successfully.",
		"data":    report,
	})
}
