package server

import (
	"net/http"

	"lottostore/application"
	"lottostore/domain/entities"
	"lottostore/domain/interfaces"
	"lottostore/domain/services"

	"github.com/gin-gonic/gin"
)

type purchaseRequest struct {
	GameID string  `json:"game_id" binding:"required"`
	Lines  [][]int `json:"lines" binding:"required"`
}

func (s *Server) handlePurchase(c *gin.Context) {
	userID := authenticatedUserID(c)

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var result *interfaces.PurchaseResult
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		purchaseService := services.NewPurchaseService(
			uow.UserRepository(),
			uow.PurchaseRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
		)
		var err error
		result, err = purchaseService.Purchase(c.Request.Context(), userID, req.GameID, req.Lines)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"purchase":    toPurchaseResponse(result.Purchase),
		"total_cost":  result.TotalCost,
		"new_balance": result.NewBalance,
	})
}

func (s *Server) handleListPurchases(c *gin.Context) {
	userID := authenticatedUserID(c)

	var purchases []*entities.Purchase
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		purchaseService := services.NewPurchaseService(
			uow.UserRepository(),
			uow.PurchaseRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
		)
		var err error
		purchases, err = purchaseService.GetUserPurchases(c.Request.Context(), userID, 100)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchases": toPurchaseResponses(purchases)})
}
