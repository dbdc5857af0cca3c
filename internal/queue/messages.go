package queue

import (
	"encoding/json"
	"time"
)

// EvaluationMessage asks the limit worker to re-evaluate the active limits
// for one (user, category) pair after an expense was written. ExpenseID is
// carried for log correlation only; the worker always re-aggregates.
type EvaluationMessage struct {
	UserID     string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	ExpenseID  string    `json:"expense_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewEvaluationMessage(userID, categoryID, expenseID string) *EvaluationMessage {
	return &EvaluationMessage{
		UserID:     userID,
		CategoryID: categoryID,
		ExpenseID:  expenseID,
		Timestamp:  time.Now(),
	}
}

func (m *EvaluationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EvaluationMessageFromJSON(data []byte) (*EvaluationMessage, error) {
	var msg EvaluationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
