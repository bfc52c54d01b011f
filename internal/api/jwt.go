package api

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/zbonzo/warlock/internal/constants"
)

// sessionClaims is the payload of the HMAC-signed session token. Guests
// have no email, so the stable player UUID is the identity that matters.
type sessionClaims struct {
	Email      string `json:"sub"`
	PlayerUUID string `json:"uuid"`
	PlayerName string `json:"name"`
	IssuedAt   int64  `json:"iat"`
	ExpiresAt  int64  `json:"exp"`
}

const tokenHeader = `{"alg":"HS256","typ":"JWT"}`

var (
	devSecretOnce sync.Once
	devSecret     []byte
)

// sessionSecret returns the signing key. Without SESSION_SECRET a random
// in-process key is used, which invalidates sessions on restart.
func sessionSecret() ([]byte, error) {
	if s := os.Getenv(constants.EnvSessionSecret); s != "" {
		return []byte(s), nil
	}
	var genErr error
	devSecretOnce.Do(func() {
		devSecret = make([]byte, 32)
		_, genErr = crand.Read(devSecret)
	})
	if genErr != nil || len(devSecret) == 0 {
		return nil, errors.New("no session secret available")
	}
	return devSecret, nil
}

func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

func hmacSign(signingInput string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(signingInput))
	return encodeSegment(mac.Sum(nil))
}

// createSessionToken mints a signed session token for the given identity.
func createSessionToken(email, playerUUID, name string, ttl time.Duration) (string, error) {
	secret, err := sessionSecret()
	if err != nil {
		return "", err
	}
	now := time.Now().Unix()
	payload, _ := json.Marshal(sessionClaims{
		Email:      email,
		PlayerUUID: playerUUID,
		PlayerName: name,
		IssuedAt:   now,
		ExpiresAt:  now + int64(ttl.Seconds()),
	})
	signingInput := encodeSegment([]byte(tokenHeader)) + "." + encodeSegment(payload)
	return signingInput + "." + hmacSign(signingInput, secret), nil
}

// parseAndValidateSession verifies the signature and expiry and returns
// the claims. A token without a player UUID is rejected outright.
func parseAndValidateSession(token string) (*sessionClaims, error) {
	header, rest, ok := strings.Cut(token, ".")
	if !ok {
		return nil, errors.New("malformed session token")
	}
	payload, sig, ok := strings.Cut(rest, ".")
	if !ok {
		return nil, errors.New("malformed session token")
	}
	secret, err := sessionSecret()
	if err != nil {
		return nil, err
	}
	want := hmacSign(header+"."+payload, secret)
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return nil, errors.New("bad session signature")
	}
	raw, err := decodeSegment(payload)
	if err != nil {
		return nil, err
	}
	var claims sessionClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, err
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, errors.New("session expired")
	}
	if claims.PlayerUUID == "" {
		return nil, errors.New("session has no player identity")
	}
	return &claims, nil
}
