package server

import (
	"net/http"

	"lottostore/application"
	"lottostore/domain/entities"
	"lottostore/domain/services"

	"github.com/gin-gonic/gin"
)

type amountRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

func (s *Server) handleRequestDeposit(c *gin.Context) {
	userID := authenticatedUserID(c)

	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tx *entities.Transaction
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		walletService := services.NewWalletService(
			uow.UserRepository(),
			uow.TransactionRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
		)
		var err error
		tx, err = walletService.RequestDeposit(c.Request.Context(), userID, req.Amount)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": toTransactionResponse(tx)})
}

func (s *Server) handleRequestWithdrawal(c *gin.Context) {
	userID := authenticatedUserID(c)

	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tx *entities.Transaction
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		walletService := services.NewWalletService(
			uow.UserRepository(),
			uow.TransactionRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
		)
		var err error
		tx, err = walletService.RequestWithdrawal(c.Request.Context(), userID, req.Amount)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": toTransactionResponse(tx)})
}

func (s *Server) handleListTransactions(c *gin.Context) {
	userID := authenticatedUserID(c)

	var txs []*entities.Transaction
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		walletService := services.NewWalletService(
			uow.UserRepository(),
			uow.TransactionRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
		)
		var err error
		txs, err = walletService.GetUserTransactions(c.Request.Context(), userID, 100)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": toTransactionResponses(txs)})
}
