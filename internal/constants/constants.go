package constants

// Centralized constants for headers, env keys and route paths.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "WARLOCK_CONFIG"
	EnvDBPath              = "WARLOCK_DB"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
	ContentTypePNG    = "image/png"

	// Session / Cookie names
	CookieSessionName = "w_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
	}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteAbilities          = "/abilities"
	RoutePublicGames        = "/public-games"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthGuest          = "/auth/guest"
	RouteAuthLogout         = "/auth/logout"
	RoutePlayerStats        = "/player-stats"
	RouteGames              = "/games"
	RouteGamesJoin          = "/games/join"
	RouteGameByCode         = "/games/:gameCode"
	RouteGameQR             = "/games/:gameCode/qr"
	RouteGameStart          = "/games/:gameCode/start"
	RouteGameEnd            = "/games/:gameCode/end"
	RouteGameLeave          = "/games/:gameCode/leave"
	RouteGameAction         = "/games/:gameCode/action"
	RouteGameReady          = "/games/:gameCode/ready"
	RouteGameHistory        = "/games/:gameCode/history"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidGameCode  = "Invalid game code"
	ErrGameNotFound     = "Game not found"

	ErrFailedFetchGames       = "Failed to fetch games"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedEncodeGame       = "Failed to encode game"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrNameRequired           = "player name is required"

	ErrFailedCreateGame            = "Failed to create game"
	ErrGameNameExceeds             = "Game name exceeds 32 characters"
	ErrGameFull                    = "Game is full"
	ErrNotEnoughPlayers            = "Not enough players to start the game"
	ErrGameAlreadyStarted          = "Game is already starting or started"
	ErrFailedUpdateGame            = "Failed to update game"
	ErrFailedEndGame               = "Failed to end game"
	ErrFailedRemovePlayer          = "Failed to remove player"
	ErrPlayerNotInThisGame         = "Player not in this game"
	ErrCannotLeaveAfterGameStarted = "Cannot leave after the game has started"

	ErrFailedStoreAction           = "Failed to store action"
	ErrGameNotInProgress           = "Game is not in progress"
	ErrActionsLockedResolvingRound = "Actions are locked; resolving current round"
	ErrActionRejected              = "Action rejected"
	ErrFailedStoreReady            = "Failed to store ready acknowledgement"
	ErrFailedRenderQR              = "Failed to render QR code"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldGameID   = "game_id"
	LogFieldJoinCode = "join_code"
	LogFieldPlayer   = "player_uuid"
	LogFieldRound    = "round"
	LogFieldAddr     = "addr"
)
