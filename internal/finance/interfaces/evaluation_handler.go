package interfaces

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/application"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
)

type EvaluationServiceInterface interface {
	EvaluateLimits(req application.EvaluationRequest) (*application.EvaluationResult, error)
}

// EvaluationHandler exposes limit evaluation as an internal endpoint. It is
// the synchronous counterpart of the queue consumer and is meant for other
// services and for operators, not for end users.
type EvaluationHandler struct {
	service     EvaluationServiceInterface
	respondJSON func(w http.ResponseWriter, status int, payload interface{})
}

func NewEvaluationHandler(
	service EvaluationServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
) *EvaluationHandler {
	if service == nil || respondJSON == nil {
		panic("Service and response functions must not be nil")
	}
	return &EvaluationHandler{
		service:     service,
		respondJSON: respondJSON,
	}
}

// EvaluateLimits answers with the bare evaluation result, not the usual
// response envelope. This endpoint is a service-to-service contract and its
// shape is shared with the queue consumer.
func (h *EvaluationHandler) EvaluateLimits(w http.ResponseWriter, r *http.Request) {
	var request application.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	result, err := h.service.EvaluateLimits(request)
	if err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if financeErrors.IsDependencyReadError(err) {
			log.Println("Evaluation dependency failure:", err.Error())
			h.respondJSON(w, http.StatusBadGateway, map[string]string{"error": "Evaluation dependencies unavailable"})
			return
		}
		log.Println("Error during limit evaluation:", err.Error())
		h.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to evaluate limits"})
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}
