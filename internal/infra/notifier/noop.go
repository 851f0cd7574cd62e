package notifier

import (
	"context"

	"fiji-news/internal/domain/entity"
)

// NoOpNotifier is used when no webhook is configured.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a NoOpNotifier.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyThreats does nothing.
func (n *NoOpNotifier) NotifyThreats(context.Context, *entity.Analysis, string) error {
	return nil
}
