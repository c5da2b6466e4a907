package server

import (
	"net/http"

	"lottostore/application"
	"lottostore/domain/entities"
	"lottostore/domain/services"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user *entities.User
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		accountService := services.NewAccountService(
			uow.UserRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
			s.startingBalance,
		)
		var err error
		user, err = accountService.Register(c.Request.Context(), req.Email, req.Password, req.Username)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: toUserResponse(user)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user *entities.User
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		accountService := services.NewAccountService(
			uow.UserRepository(),
			uow.BalanceHistoryRepository(),
			uow.EventBus(),
			s.startingBalance,
		)
		var err error
		user, err = accountService.Authenticate(c.Request.Context(), req.Email, req.Password)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}
