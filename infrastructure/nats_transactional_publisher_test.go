package infrastructure

import (
	"context"
	"errors"
	"testing"

	"lottostore/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher captures delivered events
type recordingPublisher struct {
	delivered []events.Event
	failOn    events.EventType
}

func (p *recordingPublisher) Publish(event events.Event) error {
	if p.failOn != "" && event.Type() == p.failOn {
		return errors.New("delivery failed")
	}
	p.delivered = append(p.delivered, event)
	return nil
}

func TestNATSTransactionalPublisher(t *testing.T) {
	ctx := context.Background()

	t.Run("buffers until flush", func(t *testing.T) {
		real := &recordingPublisher{}
		publisher := NewNATSTransactionalPublisher(real)

		require.NoError(t, publisher.Publish(events.UserCreatedEvent{UserID: 1}))
		require.NoError(t, publisher.Publish(events.BalanceChangeEvent{UserID: 1}))
		assert.Empty(t, real.delivered)

		require.NoError(t, publisher.Flush(ctx))
		require.Len(t, real.delivered, 2)
		assert.Equal(t, events.EventTypeUserCreated, real.delivered[0].Type())
		assert.Equal(t, events.EventTypeBalanceChange, real.delivered[1].Type())
	})

	t.Run("discard drops buffered events", func(t *testing.T) {
		real := &recordingPublisher{}
		publisher := NewNATSTransactionalPublisher(real)

		require.NoError(t, publisher.Publish(events.UserCreatedEvent{UserID: 1}))
		publisher.Discard()

		require.NoError(t, publisher.Flush(ctx))
		assert.Empty(t, real.delivered)
	})

	t.Run("flush is not repeatable", func(t *testing.T) {
		real := &recordingPublisher{}
		publisher := NewNATSTransactionalPublisher(real)

		require.NoError(t, publisher.Publish(events.UserCreatedEvent{UserID: 1}))
		require.NoError(t, publisher.Flush(ctx))
		require.NoError(t, publisher.Flush(ctx))
		assert.Len(t, real.delivered, 1)
	})

	t.Run("a failed delivery does not block the rest", func(t *testing.T) {
		real := &recordingPublisher{failOn: events.EventTypeUserCreated}
		publisher := NewNATSTransactionalPublisher(real)

		require.NoError(t, publisher.Publish(events.UserCreatedEvent{UserID: 1}))
		require.NoError(t, publisher.Publish(events.BalanceChangeEvent{UserID: 1}))

		require.NoError(t, publisher.Flush(ctx))
		require.Len(t, real.delivered, 1)
		assert.Equal(t, events.EventTypeBalanceChange, real.delivered[0].Type())
	})
}

func TestEventSubjectMapper(t *testing.T) {
	mapper := NewEventSubjectMapper()

	tests := []struct {
		event   events.Event
		subject string
	}{
		{events.BalanceChangeEvent{}, "lotto.users.balance_changed"},
		{events.UserCreatedEvent{}, "lotto.users.created"},
		{events.PurchasePlacedEvent{}, "lotto.purchases.placed"},
		{events.DrawCompletedEvent{}, "lotto.draws.completed"},
		{events.TransactionProcessedEvent{}, "lotto.transactions.processed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.subject, mapper.MapEventToSubject(tt.event))
	}

	assert.Len(t, mapper.GetAllSubjects(), len(tests))
}
