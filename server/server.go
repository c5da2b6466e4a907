package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lottostore/application"
	"lottostore/domain/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Server is the HTTP front of the storefront
type Server struct {
	uowFactory      application.UnitOfWorkFactory
	jwtService      *JWTService
	generator       *services.NumberGenerator
	startingBalance int64
	httpServer      *http.Server
}

// Config holds the server's settings
type Config struct {
	Addr            string
	JWTSecret       string
	TokenTTL        time.Duration
	StartingBalance int64
	Environment     string
}

// New creates a new server
func New(cfg Config, uowFactory application.UnitOfWorkFactory) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		uowFactory:      uowFactory,
		jwtService:      NewJWTService(cfg.JWTSecret, cfg.TokenTTL),
		generator:       services.NewNumberGenerator(),
		startingBalance: cfg.StartingBalance,
	}
	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.Router(),
	}
	return s
}

// Router builds the route table
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/auth/register", s.handleRegister)
	router.POST("/auth/login", s.handleLogin)

	router.GET("/games", s.handleListGames)
	router.GET("/games/:id/quickpick", s.handleQuickPick)
	router.GET("/games/:id/draws", s.handleDrawHistory)

	authed := router.Group("/api")
	authed.Use(AuthMiddleware(s.jwtService))
	{
		authed.GET("/me", s.handleCurrentUser)
		authed.PUT("/me/bank", s.handleUpdateBankInfo)
		authed.GET("/me/history", s.handleBalanceHistory)

		authed.POST("/purchases", s.handlePurchase)
		authed.GET("/purchases", s.handleListPurchases)

		authed.POST("/transactions/deposit", s.handleRequestDeposit)
		authed.POST("/transactions/withdraw", s.handleRequestWithdrawal)
		authed.GET("/transactions", s.handleListTransactions)
	}

	admin := router.Group("/admin")
	admin.Use(AuthMiddleware(s.jwtService), AdminMiddleware())
	{
		admin.GET("/users", s.handleListUsers)
		admin.PUT("/users/:id/balance", s.handleAdjustBalance)
		admin.GET("/transactions/pending", s.handlePendingTransactions)
		admin.POST("/transactions/:id/process", s.handleProcessTransaction)
		admin.POST("/draws/winning-numbers", s.handleSetWinningNumbers)
		admin.POST("/draws/execute", s.handleExecuteDraw)
	}

	return router
}

// Run starts the HTTP listener and blocks until it stops
func (s *Server) Run() error {
	log.WithField("addr", s.httpServer.Addr).Info("HTTP server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// withUnitOfWork runs fn inside a transaction, committing on success
func (s *Server) withUnitOfWork(ctx context.Context, fn func(uow application.UnitOfWork) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
