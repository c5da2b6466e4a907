package repository

import (
	"context"

	"lottostore/application"
	"lottostore/database"
	"lottostore/domain/events"
)

// discardPublisher drops events; enough for repository tests
type discardPublisher struct{}

func (discardPublisher) Publish(event events.Event) error { return nil }
func (discardPublisher) Flush(ctx context.Context) error  { return nil }
func (discardPublisher) Discard()                         {}

// NewDiscardPublisher returns a transactional publisher that drops everything
func NewDiscardPublisher() application.TransactionalEventPublisher {
	return discardPublisher{}
}

// CreateTestUnitOfWork creates a unit of work for testing with the provided
// transactional publisher
func CreateTestUnitOfWork(db *database.DB, transactionalPublisher application.TransactionalEventPublisher) application.UnitOfWork {
	if transactionalPublisher == nil {
		transactionalPublisher = NewDiscardPublisher()
	}
	factory := NewUnitOfWorkFactory(db)
	return factory.CreateWithPublisher(transactionalPublisher)
}
