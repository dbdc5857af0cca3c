package interfaces

import (
	"github.com/sebuszqo/ExpenseTracker/internal/finance/application"
)

type MockEvaluationService struct {
	Result   *application.EvaluationResult
	Err      error
	Requests []application.EvaluationRequest
}

func (m *MockEvaluationService) EvaluateLimits(req application.EvaluationRequest) (*application.EvaluationResult, error) {
	m.Requests = append(m.Requests, req)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &application.EvaluationResult{Breaches: []application.Breach{}}, nil
}
