package server

import (
	"net/http"
	"time"

	"lottostore/application"
	"lottostore/domain/entities"
	"lottostore/domain/services"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleCurrentUser(c *gin.Context) {
	userID := authenticatedUserID(c)

	var user *entities.User
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		accountService := services.NewAccountService(
			uow.UserRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
			s.startingBalance,
		)
		var err error
		user, err = accountService.GetUser(c.Request.Context(), userID)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

type bankInfoRequest struct {
	BankName      string `json:"bank_name" binding:"required"`
	BranchName    string `json:"branch_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
	AccountName   string `json:"account_name" binding:"required"`
}

func (s *Server) handleUpdateBankInfo(c *gin.Context) {
	userID := authenticatedUserID(c)

	var req bankInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info := entities.BankInfo{
		BankName:      req.BankName,
		BranchName:    req.BranchName,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	}

	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		accountService := services.NewAccountService(
			uow.UserRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
			s.startingBalance,
		)
		return accountService.UpdateBankInfo(c.Request.Context(), userID, info)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "bank info updated"})
}

type balanceHistoryEntry struct {
	BalanceBefore   int64          `json:"balance_before"`
	BalanceAfter    int64          `json:"balance_after"`
	ChangeAmount    int64          `json:"change_amount"`
	TransactionType string         `json:"transaction_type"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (s *Server) handleBalanceHistory(c *gin.Context) {
	userID := authenticatedUserID(c)

	var history []*entities.BalanceHistory
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		var err error
		history, err = uow.BalanceHistoryRepository().GetByUser(c.Request.Context(), userID, 100)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]balanceHistoryEntry, 0, len(history))
	for _, h := range history {
		out = append(out, balanceHistoryEntry{
			BalanceBefore:   h.BalanceBefore,
			BalanceAfter:    h.BalanceAfter,
			ChangeAmount:    h.ChangeAmount,
			TransactionType: string(h.TransactionType),
			Metadata:        h.TransactionMetadata,
			CreatedAt:       h.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": out})
}
