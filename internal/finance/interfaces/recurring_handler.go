package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/infrastructure"
)

type RecurringServiceInterface interface {
	CreateRecurringExpense(recurring *domain.RecurringExpense) error
	GetUserRecurringExpenses(userID string) ([]domain.RecurringExpense, error)
	DeleteRecurringExpense(recurringID, userID string) error
}

type RecurringExpenseHandler struct {
	service      RecurringServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewRecurringExpenseHandler(
	service RecurringServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *RecurringExpenseHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &RecurringExpenseHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *RecurringExpenseHandler) CreateRecurringExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var recurring domain.RecurringExpense
	if err := json.NewDecoder(r.Body).Decode(&recurring); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recurring.UserID = userID
	if err := h.service.CreateRecurringExpense(&recurring); err != nil {
		if financeErrors.IsValidationError(err) || errors.Is(err, financeErrors.ErrInvalidCategory) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during recurring expense creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create recurring expense")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Recurring expense successfully created.",
		"data":    recurring,
	})
}

func (h *RecurringExpenseHandler) GetUserRecurringExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recurrings, err := h.service.GetUserRecurringExpenses(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve recurring expenses")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Recurring expenses retrieved successfully.",
		"data":    recurrings,
	})
}

func (h *RecurringExpenseHandler) DeleteRecurringExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	recurringID := r.PathValue("id")
	if recurringID == "" {
		h.respondError(w, http.StatusBadRequest, "Recurring expense ID is required")
		return
	}

	if err := h.service.DeleteRecurringExpense(recurringID, userID); err != nil {
		if errors.Is(err, infrastructure.ErrRecurringNotFound) {
			h.respondError(w, http.StatusNotFound, "Recurring expense not found")
			return
		}
		log.Println("Error during recurring expense deletion:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to delete recurring expense")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Recurring expense successfully deleted.",
	})
}
