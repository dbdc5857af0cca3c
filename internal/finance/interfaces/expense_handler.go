package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/infrastructure"
)

type ExpenseServiceInterface interface {
	CreateExpense(expense *domain.Expense) error
	GetUserExpenses(userID string, startDate, endDate time.Time) ([]domain.Expense, error)
	DeleteExpense(expenseID, userID string) error
}

type ExpenseHandler struct {
	service      ExpenseServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewExpenseHandler(
	service ExpenseServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ExpenseHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ExpenseHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var expense domain.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense.UserID = userID
	if err := h.service.CreateExpense(&expense); err != nil {
		if financeErrors.IsValidationError(err) || errors.Is(err, financeErrors.ErrInvalidCategory) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during expense creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Expense successfully created.",
		"data":    expense,
	})
}

func (h *ExpenseHandler) GetUserExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	startDateStr := r.URL.Query().Get("start_date")
	endDateStr := r.URL.Query().Get("end_date")
	var startDate, endDate time.Time
	var err error

	if startDateStr == "" {
		startDate = time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	} else {
		startDate, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid start date format")
			return
		}
	}

	if endDateStr == "" {
		endDate = time.Now()
	} else {
		endDate, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid end date format")
			return
		}
	}

	expenses, err := h.service.GetUserExpenses(userID, startDate, endDate)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expenses retrieved successfully.",
		"data":    expenses,
	})
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	expenseID := r.PathValue("id")
	if expenseID == "" {
		h.respondError(w, http.StatusBadRequest, "Expense ID is required")
		return
	}

	if err := h.service.DeleteExpense(expenseID, userID); err != nil {
		if errors.Is(err, infrastructure.ErrExpenseNotFound) {
			h.respondError(w, http.StatusNotFound, "Expense not found")
			return
		}
		log.Println("Error during expense deletion:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense successfully deleted.",
	})
}
