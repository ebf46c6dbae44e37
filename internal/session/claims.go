package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what whoami shows about a token. The signature is not checked:
// the server stays the only judge of a token's validity.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// Claims decodes the token as a JWT. ok is false for opaque tokens.
func (s Session) Claims() (c Claims, ok bool) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, mc); err != nil {
		return Claims{}, false
	}
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	for _, key := range []string{"email", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"} {
		if v, found := mc[key].(string); found && v != "" {
			c.Email = v
			break
		}
	}
	return c, true
}
