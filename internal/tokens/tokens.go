package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Form tokens are short-lived JWTs embedded as a hidden field in every
// mutating dashboard form and checked on submit (CSRF protection). They are
// bound to the session token so a form stolen from one session cannot be
// replayed in another.

// GenerateFormToken creates a signed token for the given session.
func GenerateFormToken(secret, sessionToken string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionToken,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// ValidateFormToken verifies the signature and expiry and checks the session
// binding.
func ValidateFormToken(secret, sessionToken, raw string) error {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return fmt.Errorf("invalid form token")
	}
	sid, _ := claims["sid"].(string)
	if sid != sessionToken {
		return fmt.Errorf("form token does not match session")
	}
	return nil
}
