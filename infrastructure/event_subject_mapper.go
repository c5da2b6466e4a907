package infrastructure

import (
	"fmt"

	"lottostore/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBalanceChange:
		return "lotto.users.balance_changed"
	case events.EventTypeUserCreated:
		return "lotto.users.created"
	case events.EventTypePurchasePlaced:
		return "lotto.purchases.placed"
	case events.EventTypeDrawCompleted:
		return "lotto.draws.completed"
	case events.EventTypeTransactionProcessed:
		return "lotto.transactions.processed"
	default:
		return fmt.Sprintf("lotto.unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"lotto.users.balance_changed",
		"lotto.users.created",
		"lotto.purchases.placed",
		"lotto.draws.completed",
		"lotto.transactions.processed",
	}
}
