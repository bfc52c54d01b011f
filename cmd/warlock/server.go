package main

import (
	"github.com/gin-gonic/gin"
	"github.com/zbonzo/warlock/internal/api"
	"github.com/zbonzo/warlock/internal/constants"
)

// registerRoutes wires the HTTP surface: public reads, auth endpoints and
// the session-protected game operations.
func registerRoutes(router *gin.Engine, handler *api.GameHandler, authHandler *api.AuthHandler) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET("/version", api.Version)
		apiRoutes.GET(constants.RouteAbilities, handler.ListAbilities)
		apiRoutes.GET(constants.RoutePublicGames, handler.ListPublicGames)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RouteGames, handler.CreateGame)
		protected.POST(constants.RouteGamesJoin, handler.JoinGame)
		protected.GET(constants.RouteGameByCode, handler.GetGame)
		protected.GET(constants.RouteGameQR, handler.GetJoinQR)
		protected.GET(constants.RouteGameHistory, handler.GetRoundHistory)
		protected.POST(constants.RouteGameStart, handler.StartGame)
		protected.POST(constants.RouteGameEnd, handler.EndGame)
		protected.POST(constants.RouteGameLeave, handler.LeaveGame)
		protected.POST(constants.RouteGameAction, handler.SubmitAction)
		protected.POST(constants.RouteGameReady, handler.MarkReady)
	}

	router.POST(constants.RouteAPIPrefix+constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST(constants.RouteAPIPrefix+constants.RouteAuthGuest, authHandler.GuestLogin)
	router.POST(constants.RouteAPIPrefix+constants.RouteAuthLogout, authHandler.Logout)
}
