package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/dedupe"
	"github.com/zbonzo/warlock/internal/keys"
)

// GetJoinQR renders a QR code PNG pointing at the join URL for a lobby.
// Renders for the same code are deduplicated through the shared
// singleflight group since lobby screens tend to request them in bursts.
func (h *GameHandler) GetJoinQR(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	if _, err := h.svc.GetGame(code); err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}

	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://" + c.Request.Host
	}
	joinURL := base + "/join/" + code

	v, err, _ := dedupe.QRGroup.Do(keys.QRKey(code), func() (interface{}, error) {
		return qrcode.Encode(joinURL, qrcode.Medium, 256)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRenderQR})
		return
	}
	png, _ := v.([]byte)
	c.Data(http.StatusOK, constants.ContentTypePNG, png)
}
