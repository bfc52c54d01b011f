package keys

import (
	"strconv"
	"strings"
)

// QRKey produces the cache key for a join-code QR render.
func QRKey(joinCode string) string {
	return "qr:" + strings.ToUpper(strings.TrimSpace(joinCode))
}

// LeaderboardKey produces the dedupe key for a leaderboard query of the
// given size.
func LeaderboardKey(limit int) string {
	return "leaderboard:" + strconv.Itoa(limit)
}
