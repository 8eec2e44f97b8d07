// internal/app/store/orders/status.go
package orderstore

import (
	"fmt"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
)

// forward is the fulfilment pipeline in order. Cancellation is handled
// separately because it is only allowed early in the pipeline.
var forward = map[string]string{
	models.OrderPending:    models.OrderConfirmed,
	models.OrderConfirmed:  models.OrderProcessing,
	models.OrderProcessing: models.OrderShipped,
	models.OrderShipped:    models.OrderDelivered,
}

var cancellable = map[string]bool{
	models.OrderPending:    true,
	models.OrderConfirmed:  true,
	models.OrderProcessing: true,
}

// CanTransition reports whether an order may move from one status to
// another. Admins step orders forward one stage at a time; skipping stages
// or moving backwards is rejected, as is touching a terminal order.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	if to == models.OrderCancelled {
		return cancellable[from]
	}
	return forward[from] == to
}

// ErrBadTransition reports a rejected status change.
type ErrBadTransition struct {
	From, To string
}

func (e ErrBadTransition) Error() string {
	return fmt.Sprintf("cannot move order from %q to %q", e.From, e.To)
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case models.OrderPending, models.OrderConfirmed, models.OrderProcessing,
		models.OrderShipped, models.OrderDelivered, models.OrderCancelled:
		return true
	}
	return false
}
