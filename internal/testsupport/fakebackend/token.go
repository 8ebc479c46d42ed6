package fakebackend

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token mints an HS256 JWT for email expiring at exp. The client never checks
// the signature, so the key is arbitrary.
func Token(email string, exp time.Time) string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "intern-1",
		"email": email,
		"exp":   exp.Unix(),
	}).SignedString([]byte("fakebackend"))
	if err != nil {
		panic(err)
	}
	return signed
}
