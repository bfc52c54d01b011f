package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/service"
)

type ActionRequest struct {
	AbilityType string                 `json:"ability_type"`
	TargetID    string                 `json:"target_id"`
	IsRacial    bool                   `json:"is_racial"`
	Options     map[string]interface{} `json:"options"`
}

// SubmitAction stores the session player's chosen action for the current
// round. When the submission completes the round, the resolution happens
// inside the same request.
func (h *GameHandler) SubmitAction(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, err := h.svc.SubmitAction(code, sessionPlayer(c).UUID, engine.ActionRequest{
		AbilityType: req.AbilityType,
		TargetID:    req.TargetID,
		IsRacial:    req.IsRacial,
		Options:     req.Options,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrGameNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotInProgress})
		case errors.Is(err, service.ErrActionsLocked):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionsLockedResolvingRound})
		case errors.Is(err, service.ErrPlayerNotInGame):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisGame})
		case errors.Is(err, service.ErrInvalidAction):
			// Every failed check rides along so the client can show them all.
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				constants.JSONKeyError:   constants.ErrActionRejected,
				constants.JSONKeyDetails: res.Validation.Errors,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}

	if res.Resolved {
		out, mErr := MarshalForContext(c, projectGameForViewer(res.Game, sessionPlayer(c).UUID))
		if mErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGame})
			return
		}
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Round resolved", "game": out})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Action stored. Waiting for the rest of the party."})
}

// MarkReady records the results-phase acknowledgement; a strict majority
// of living players opens the next action phase.
func (h *GameHandler) MarkReady(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	g, err := h.svc.MarkReady(code, sessionPlayer(c).UUID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrGameNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotInProgress})
		case errors.Is(err, service.ErrNotResultsPhase):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		case errors.Is(err, service.ErrPlayerNotInGame):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisGame})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreReady})
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
