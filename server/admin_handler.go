package server

import (
	"net/http"
	"strconv"
	"time"

	"lottostore/application"
	"lottostore/domain/entities"
	"lottostore/domain/interfaces"
	"lottostore/domain/services"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListUsers(c *gin.Context) {
	var users []*entities.User
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		accountService := services.NewAccountService(
			uow.UserRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
			s.startingBalance,
		)
		var err error
		users, err = accountService.ListUsers(c.Request.Context())
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

type adjustBalanceRequest struct {
	Balance *int64 `json:"balance" binding:"required"`
}

func (s *Server) handleAdjustBalance(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req adjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user *entities.User
	err = s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		accountService := services.NewAccountService(
			uow.UserRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
			s.startingBalance,
		)
		var err error
		user, err = accountService.AdjustBalance(c.Request.Context(), userID, *req.Balance)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (s *Server) handlePendingTransactions(c *gin.Context) {
	var txs []*entities.Transaction
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		walletService := services.NewWalletService(
			uow.UserRepository(),
			uow.TransactionRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
		)
		var err error
		txs, err = walletService.GetPendingTransactions(c.Request.Context())
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": toTransactionResponses(txs)})
}

type processTransactionRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

func (s *Server) handleProcessTransaction(c *gin.Context) {
	transactionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	var req processTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tx *entities.Transaction
	err = s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		walletService := services.NewWalletService(
			uow.UserRepository(),
			uow.TransactionRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
		)
		var err error
		tx, err = walletService.ProcessTransaction(c.Request.Context(), transactionID, *req.Approve)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": toTransactionResponse(tx)})
}

type setWinningNumbersRequest struct {
	GameID   string `json:"game_id" binding:"required"`
	DrawDate string `json:"draw_date" binding:"required"`
	Numbers  []int  `json:"numbers" binding:"required"`
}

func (s *Server) handleSetWinningNumbers(c *gin.Context) {
	var req setWinningNumbersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := entities.ParseDrawDate(req.DrawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var set *entities.WinningNumberSet
	err = s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		settlementService := services.NewSettlementService(
			s.generator,
			uow.WinningNumberRepository(),
			uow.PurchaseRepository(),
			uow.UserRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
		)
		var err error
		set, err = settlementService.SetWinningNumbers(c.Request.Context(), req.GameID, date, req.Numbers)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"winning_numbers": toWinningSetResponse(set)})
}

type executeDrawRequest struct {
	DrawDate string `json:"draw_date"`
}

// handleExecuteDraw runs a manual settlement pass across the full catalog
func (s *Server) handleExecuteDraw(c *gin.Context) {
	var req executeDrawRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	date := time.Now().UTC()
	if req.DrawDate != "" {
		var err error
		date, err = entities.ParseDrawDate(req.DrawDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var result *interfaces.SettlementResult
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		settlementService := services.NewSettlementService(
			s.generator,
			uow.WinningNumberRepository(),
			uow.PurchaseRepository(),
			uow.UserRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
		)
		var err error
		result, err = settlementService.Settle(c.Request.Context(), date, entities.Games())
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draw_date":       entities.FormatDrawDate(result.DrawDate),
		"winning_numbers": toWinningSetResponses(result.WinningSets),
		"settled":         result.Settled,
		"won":             result.Won,
		"total_payout":    result.TotalPayout,
	})
}
