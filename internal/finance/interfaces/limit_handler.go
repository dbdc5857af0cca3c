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

type LimitServiceInterface interface {
	CreateLimit(limit *domain.Limit) error
	GetUserLimits(userID string) ([]domain.Limit, error)
	DeleteLimit(limitID, userID string) error
}

type LimitHandler struct {
	service      LimitServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewLimitHandler(
	service LimitServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *LimitHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &LimitHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *LimitHandler) CreateLimit(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var limit domain.Limit
	if err := json.NewDecoder(r.Body).Decode(&limit); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	limit.UserID = userID
	if err := h.service.CreateLimit(&limit); err != nil {
		if financeErrors.IsValidationError(err) ||
			errors.Is(err, financeErrors.ErrInvalidCategory) ||
			errors.Is(err, financeErrors.ErrInvalidPeriodType) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during limit creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create limit")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Limit successfully created.",
		"data":    limit,
	})
}

func (h *LimitHandler) GetUserLimits(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limits, err := h.service.GetUserLimits(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve limits")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Limits retrieved successfully.",
		"data":    limits,
	})
}

func (h *LimitHandler) DeleteLimit(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	limitID := r.PathValue("id")
	if limitID == "" {
		h.respondError(w, http.StatusBadRequest, "Limit ID is required")
		return
	}

	if err := h.service.DeleteLimit(limitID, userID); err != nil {
		if errors.Is(err, infrastructure.ErrLimitNotFound) {
			h.respondError(w, http.StatusNotFound, "Limit not found")
			return
		}
		log.Println("Error during limit deletion:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to delete limit")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Limit successfully deleted.",
	})
}
