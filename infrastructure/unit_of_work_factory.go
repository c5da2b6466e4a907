package infrastructure

import (
	"context"

	"lottostore/application"
	"lottostore/database"
	"lottostore/domain/events"
	"lottostore/domain/interfaces"
	"lottostore/repository"
)

// UnitOfWorkFactory implements the application.UnitOfWorkFactory interface.
// Every unit of work it creates gets its own transactional event publisher,
// so events buffered during the transaction flush only after commit.
type UnitOfWorkFactory struct {
	repoFactory interface {
		CreateWithPublisher(publisher application.TransactionalEventPublisher) application.UnitOfWork
	}
	eventPublisher interfaces.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory
func NewUnitOfWorkFactory(db *database.DB, eventPublisher interfaces.EventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		repoFactory:    repository.NewUnitOfWorkFactory(db),
		eventPublisher: eventPublisher,
	}
}

// RegisterLocalHandler registers a handler invoked in-process for events of
// the given type, in addition to NATS delivery
func (f *UnitOfWorkFactory) RegisterLocalHandler(eventType events.EventType, handler func(context.Context, events.Event) error) {
	if natsPublisher, ok := f.eventPublisher.(*NATSEventPublisher); ok {
		natsPublisher.RegisterLocalHandler(eventType, handler)
	}
}

// Create creates a new UnitOfWork with a transactional event publisher
func (f *UnitOfWorkFactory) Create() application.UnitOfWork {
	transactionalPublisher := NewNATSTransactionalPublisher(f.eventPublisher)
	return f.repoFactory.CreateWithPublisher(transactionalPublisher)
}
