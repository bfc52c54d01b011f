package api

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/service"
)

var joinCodeRegex = regexp.MustCompile("^[A-Z0-9]{6}$")

func normalizeJoinCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// sessionPlayer extracts the authenticated identity injected by the auth
// middleware.
func sessionPlayer(c *gin.Context) service.PlayerInfo {
	var p service.PlayerInfo
	if v, ok := c.Get("userUUID"); ok {
		p.UUID, _ = v.(string)
	}
	if v, ok := c.Get("userEmail"); ok {
		p.Email, _ = v.(string)
	}
	if v, ok := c.Get("userName"); ok {
		p.Name, _ = v.(string)
	}
	return p
}

// projectGameForViewer returns a shallow copy of the game whose round log
// keeps only the entries the viewer may see. Each entry is stored once
// with a visibility set; projection happens here, at the transport edge.
// Hidden roles stay hidden until the game is finished.
func projectGameForViewer(g *game.Game, viewerUUID string) map[string]interface{} {
	filtered := make([]game.LogEntry, 0, len(g.RoundLog))
	for _, e := range g.RoundLog {
		if e.Public || containsString(e.VisibleTo, viewerUUID) {
			e.VisibleTo = nil
			filtered = append(filtered, e)
		}
	}
	// The nested game must carry the filtered log too; the stored log with
	// its visibility sets never reaches the wire.
	view := *g
	view.RoundLog = filtered
	out := map[string]interface{}{"game": &view, "round_log": filtered}
	if g.Status == game.StatusFinished {
		corrupted := []string{}
		for i := range g.Participants {
			if g.Participants[i].IsCorrupted {
				corrupted = append(corrupted, g.Participants[i].PlayerUUID)
			}
		}
		out["corrupted_ids"] = corrupted
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// normalizeTimestamps recursively renames GORM timestamp keys from
// CamelCase to snake_case so clients consistently receive snake_case.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		if val, ok := vv["CreatedAt"]; ok {
			vv["created_at"] = val
			delete(vv, "CreatedAt")
		}
		if val, ok := vv["UpdatedAt"]; ok {
			vv["updated_at"] = val
			delete(vv, "UpdatedAt")
		}
		if val, ok := vv["DeletedAt"]; ok {
			vv["deleted_at"] = val
			delete(vv, "DeletedAt")
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, decodes
// it back into an interface{} and normalizes timestamp keys.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}

// MarshalForContext behaves like MarshalIntoSnakeTimestamps but also
// redacts email fields that do not belong to the authenticated session
// user, so other players' emails are never exposed.
func MarshalForContext(c *gin.Context, v interface{}) (interface{}, error) {
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		return nil, err
	}
	currentEmail := ""
	if c != nil {
		if v, ok := c.Get("userEmail"); ok {
			if s, _ := v.(string); s != "" {
				currentEmail = s
			}
		}
	}
	redactEmails(out, currentEmail)
	return out, nil
}

// redactEmails walks a marshalled JSON structure and removes any field
// whose key contains "email" unless its value equals currentEmail.
func redactEmails(v interface{}, currentEmail string) {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			if strings.Contains(strings.ToLower(k), "email") {
				if s, ok := val.(string); ok && currentEmail != "" && s == currentEmail {
					continue
				}
				delete(vv, k)
				continue
			}
			redactEmails(val, currentEmail)
		}
	case []interface{}:
		for i := range vv {
			redactEmails(vv[i], currentEmail)
		}
	}
}
