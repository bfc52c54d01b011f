package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/dedupe"
	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/keys"
	"github.com/zbonzo/warlock/internal/service"
)

// ListAbilities returns the configured class ability catalog.
func (h *GameHandler) ListAbilities(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Abilities())
}

// ListPublicGames returns joinable public lobbies.
func (h *GameHandler) ListPublicGames(c *gin.Context) {
	games, err := h.svc.PublicGames()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGames})
		return
	}
	out, err := MarshalForContext(c, games)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGame})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top players by wins. Concurrent identical
// queries collapse into one through the shared singleflight group.
func (h *GameHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	v, err, _ := dedupe.LeaderboardGroup.Do(keys.LeaderboardKey(limit), func() (interface{}, error) {
		return h.svc.Leaderboard(limit)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalForContext(c, v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetGame returns a room projected for the session viewer: private log
// entries for other players are dropped and hidden roles stay hidden
// until the game finishes.
func (h *GameHandler) GetGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	g, err := h.svc.GetGame(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	out, err := MarshalForContext(c, projectGameForViewer(g, sessionPlayer(c).UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGame})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetRoundHistory returns the persisted per-round summaries for a game.
func (h *GameHandler) GetRoundHistory(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	summaries, err := h.svc.RoundHistory(code)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(summaries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGame})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetPlayerStats returns aggregated stats for the session user.
func (h *GameHandler) GetPlayerStats(c *gin.Context) {
	email := sessionPlayer(c).Email
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNameRequired})
		return
	}
	ps, err := h.svc.PlayerStats(email)
	if err != nil {
		if errors.Is(err, service.ErrNoStats) {
			c.JSON(http.StatusOK, &game.User{Email: email})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, err := MarshalForContext(c, ps)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, out)
}
