// Package auth validates the bearer tokens the surrounding identity system
// issues to sync clients. Token issuance itself belongs to that external
// system; this package only verifies what it is handed.
package auth

import "github.com/golang-jwt/jwt/v5"

// Claims identifies the device (clientId) and owning account (userId) a
// sync request is acting as. Unlike a general-purpose identity token, a
// sync token carries no role or group: every operation is scoped to one
// user by construction, so there is nothing left to authorize beyond "is
// this token valid for this user".
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the account that owns every row this request can touch.
	UserID string `json:"uid"`

	// ClientID identifies the replica (device) presenting the token. It is
	// trusted only as the LWW tie-breaker; it grants no additional authority.
	ClientID string `json:"cid"`
}
