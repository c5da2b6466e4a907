package server

import (
	"net/http"
	"strconv"

	"lottostore/application"
	"lottostore/domain/entities"
	"lottostore/domain/services"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListGames(c *gin.Context) {
	games := entities.Games()
	out := make([]gameResponse, 0, len(games))
	for _, game := range games {
		out = append(out, toGameResponse(game))
	}
	c.JSON(http.StatusOK, gin.H{"games": out})
}

// handleQuickPick returns randomly generated lines for a game
func (s *Server) handleQuickPick(c *gin.Context) {
	game := entities.GameByID(c.Param("id"))
	if game == nil {
		respondError(c, services.ErrUnknownGame)
		return
	}

	count := 1
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 10"})
			return
		}
		count = parsed
	}

	lines := make([][]int, 0, count)
	for i := 0; i < count; i++ {
		line, err := s.generator.Generate(game.PickCount, game.MaxNumber)
		if err != nil {
			respondError(c, err)
			return
		}
		lines = append(lines, line)
	}

	c.JSON(http.StatusOK, gin.H{"game_id": game.ID, "lines": lines})
}

func (s *Server) handleDrawHistory(c *gin.Context) {
	game := entities.GameByID(c.Param("id"))
	if game == nil {
		respondError(c, services.ErrUnknownGame)
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = parsed
	}

	var sets []*entities.WinningNumberSet
	err := s.withUnitOfWork(c.Request.Context(), func(uow application.UnitOfWork) error {
		var err error
		sets, err = uow.WinningNumberRepository().GetHistory(c.Request.Context(), game.ID, limit)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"draws": toWinningSetResponses(sets)})
}
