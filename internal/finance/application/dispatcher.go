package application

import (
	"context"
	"log"
	"time"
)

// EvaluationDispatcher decouples the user-facing expense write from limit
// evaluation. Dispatch never blocks the caller and never returns an error:
// the expense is already durable and must not be failed or rolled back over
// anything that happens downstream.
type EvaluationDispatcher interface {
	DispatchEvaluation(userID, categoryID, expenseID string)
}

type EvaluationPublisher interface {
	PublishEvaluation(ctx context.Context, userID, categoryID, expenseID string) error
}

// QueueDispatcher hands evaluation off to the message broker; the limit
// worker picks it up with at-least-once delivery.
type QueueDispatcher struct {
	publisher EvaluationPublisher
	timeout   time.Duration
}

func NewQueueDispatcher(publisher EvaluationPublisher, timeout time.Duration) *QueueDispatcher {
	return &QueueDispatcher{publisher: publisher, timeout: timeout}
}

func (d *QueueDispatcher) DispatchEvaluation(userID, categoryID, expenseID string) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.publisher.PublishEvaluation(ctx, userID, categoryID, expenseID); err != nil {
		log.Printf("Failed to publish evaluation for user %s, category %s: %v", userID, categoryID, err)
	}
}

// InProcessDispatcher evaluates in a goroutine with its own deadline. Used
// when no broker is configured; errors are logged and swallowed so a slow or
// failing evaluation never delays or fails expense creation.
type InProcessDispatcher struct {
	evaluator *LimitEvaluator
	timeout   time.Duration
}

func NewInProcessDispatcher(evaluator *LimitEvaluator, timeout time.Duration) *InProcessDispatcher {
	return &InProcessDispatcher{evaluator: evaluator, timeout: timeout}
}

func (d *InProcessDispatcher) DispatchEvaluation(userID, categoryID, expenseID string) {
	go func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			result, err := d.evaluator.EvaluateLimits(EvaluationRequest{UserID: userID, CategoryID: categoryID})
			if err != nil {
				log.Printf("Limit evaluation after expense %s failed: %v", expenseID, err)
				return
			}
			if len(result.Breaches) > 0 {
				log.Printf("Limit evaluation after expense %s: %d of %d limits breached",
					expenseID, len(result.Breaches), result.LimitsEvaluated)
			}
		}()

		select {
		case <-done:
		case <-time.After(d.timeout):
			log.Printf("Limit evaluation after expense %s still running after %v, abandoning wait", expenseID, d.timeout)
		}
	}()
}
