package application

import (
	"context"
	"fmt"
	"time"

	"lottostore/domain/entities"
	"lottostore/domain/services"

	log "github.com/sirupsen/logrus"
)

// drawHourUTC is when the daily settlement pass runs.
const drawHourUTC = 20

// SettlementWorker runs the scheduled draw settlement. Each day that has at
// least one game drawing, it settles the games due that weekday.
type SettlementWorker struct {
	uowFactory UnitOfWorkFactory
	generator  *services.NumberGenerator
	now        func() time.Time
}

// NewSettlementWorker creates a new settlement worker
func NewSettlementWorker(uowFactory UnitOfWorkFactory, generator *services.NumberGenerator) *SettlementWorker {
	return &SettlementWorker{
		uowFactory: uowFactory,
		generator:  generator,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the settlement worker. The returned function stops it.
func (w *SettlementWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Info("Settlement worker started")

		for {
			nextDrawTime := w.NextDrawTime(w.now())

			waitDuration := time.Until(nextDrawTime)
			if waitDuration > 0 {
				log.Infof("Next draw settlement at %v (in %v)", nextDrawTime, waitDuration.Round(time.Second))

				select {
				case <-ctx.Done():
					log.Info("Settlement worker shutting down (context cancelled)...")
					return
				case <-stopChan:
					log.Info("Settlement worker shutting down (stop requested)...")
					return
				case <-time.After(waitDuration):
				}
			}

			if err := w.SettleDue(ctx, nextDrawTime); err != nil {
				log.Errorf("Error settling draws for %s: %v", entities.FormatDrawDate(nextDrawTime), err)
				// Back off before recomputing, so a persistent failure
				// doesn't spin the loop
				select {
				case <-ctx.Done():
					return
				case <-stopChan:
					return
				case <-time.After(time.Minute):
				}
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// NextDrawTime returns the first instant at or after now when some game draws
func (w *SettlementWorker) NextDrawTime(now time.Time) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), drawHourUTC, 0, 0, 0, time.UTC)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	// At most a week until some game draws again
	for i := 0; i < 7; i++ {
		if len(entities.DrawsOn(candidate.Weekday())) > 0 {
			return candidate
		}
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

// SettleDue settles every game that draws on the given date, in one
// transaction
func (w *SettlementWorker) SettleDue(ctx context.Context, drawTime time.Time) error {
	games := entities.DrawsOn(drawTime.Weekday())
	if len(games) == 0 {
		return nil
	}

	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settlementService := services.NewSettlementService(
		w.generator,
		uow.WinningNumberRepository(),
		uow.PurchaseRepository(),
		uow.UserRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
	)

	result, err := settlementService.Settle(ctx, drawTime, games)
	if err != nil {
		return fmt.Errorf("failed to settle draws: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"draw_date":    entities.FormatDrawDate(drawTime),
		"games":        len(games),
		"settled":      result.Settled,
		"won":          result.Won,
		"total_payout": result.TotalPayout,
	}).Info("Draw settlement completed")

	return nil
}
