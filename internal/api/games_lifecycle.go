package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/service"
)

type CreateGameRequest struct {
	GameName string `json:"game_name"`
	Private  bool   `json:"private"`
	Race     string `json:"race"`
	Class    string `json:"class"`
}

// CreateGame opens a lobby with the session user as host.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if len(req.GameName) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrGameNameExceeds})
		return
	}
	g, err := h.svc.CreateGame(sessionPlayer(c), req.GameName, req.Private, req.Race, req.Class)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRace), errors.Is(err, service.ErrUnknownClass):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGame})
		}
		return
	}
	out, err := MarshalForContext(c, g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGame})
		return
	}
	c.JSON(http.StatusCreated, out)
}

type JoinGameRequest struct {
	JoinCode string `json:"join_code"`
	Race     string `json:"race"`
	Class    string `json:"class"`
}

// JoinGame adds the session user to a lobby.
func (h *GameHandler) JoinGame(c *gin.Context) {
	var req JoinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code := normalizeJoinCode(req.JoinCode)
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	g, err := h.svc.JoinGame(code, sessionPlayer(c), req.Race, req.Class)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrGameStarted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameAlreadyStarted})
		case errors.Is(err, service.ErrGameFull):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameFull})
		case errors.Is(err, service.ErrAlreadyInGame):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		case errors.Is(err, service.ErrUnknownRace), errors.Is(err, service.ErrUnknownClass):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		}
		return
	}
	out, err := MarshalForContext(c, g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGame})
		return
	}
	c.JSON(http.StatusOK, out)
}

// StartGame deals hidden roles and opens the first action phase. Host only.
func (h *GameHandler) StartGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	g, err := h.svc.StartGame(code, sessionPlayer(c).UUID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrGameStarted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameAlreadyStarted})
		case errors.Is(err, service.ErrNotEnoughPlayers):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotEnoughPlayers})
		case errors.Is(err, service.ErrNotGameHost), errors.Is(err, service.ErrCharacterRequired):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		}
		return
	}
	out, err := MarshalForContext(c, projectGameForViewer(g, sessionPlayer(c).UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGame})
		return
	}
	c.JSON(http.StatusOK, out)
}

// LeaveGame removes the session user from a lobby, or schedules the
// disconnect for the next safe point when the fight is running.
func (h *GameHandler) LeaveGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	_, err := h.svc.LeaveGame(code, sessionPlayer(c).UUID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrPlayerNotInGame):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisGame})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRemovePlayer})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// EndGame lets the host abort a running game.
func (h *GameHandler) EndGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	g, err := h.svc.EndGame(code, sessionPlayer(c).UUID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrNotGameHost):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEndGame})
		}
		return
	}
	out, err := MarshalForContext(c, projectGameForViewer(g, sessionPlayer(c).UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGame})
		return
	}
	c.JSON(http.StatusOK, out)
}
