package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	KeyLogbookToken = "logbook_token"
	KeyToken        = "token"
)

type StoreKind string

const (
	StoreLocal   StoreKind = "local"
	StoreSession StoreKind = "session"
	StoreCookie  StoreKind = "cookie"
)

func (k StoreKind) Validate() error {
	switch k {
	case StoreLocal, StoreSession, StoreCookie:
		return nil
	default:
		return fmt.Errorf("unsupported credential store %q", string(k))
	}
}

type Lookup struct {
	Store StoreKind
	Key   string
}

// LookupOrder is the fixed priority in which credentials are resolved.
var LookupOrder = []Lookup{
	{Store: StoreLocal, Key: KeyLogbookToken},
	{Store: StoreLocal, Key: KeyToken},
	{Store: StoreSession, Key: KeyLogbookToken},
	{Store: StoreSession, Key: KeyToken},
	{Store: StoreCookie, Key: KeyLogbookToken},
}

// KnownKeys lists every key logout clears from every store.
var KnownKeys = []string{KeyLogbookToken, KeyToken}

type Credential struct {
	Value string
	Store StoreKind
	Key   string
}

// Claims is the subset of the LogBook JWT payload the client reads. The
// signature is never checked here; the backend verifies it.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
	HasExpiry bool
}

// Valid reports whether the token expires strictly after now. Tokens without
// an exp claim are never valid.
func (c Claims) Valid(now time.Time) bool {
	return c.HasExpiry && c.ExpiresAt.After(now)
}

// maxExpSeconds bounds exp before it becomes a time.Time so absurd values
// stay in the far future instead of wrapping around int64.
const maxExpSeconds = float64(1 << 62)

var unverified = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeClaims reads the payload without checking the signature. It fails on
// anything that is not a three-segment JWT with a JSON payload, or on an exp
// that is not numeric. exp is kept to whole seconds.
func DecodeClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := unverified.ParseUnverified(strings.TrimSpace(token), mc); err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}

	claims := Claims{}
	claims.Subject, _ = mc.GetSubject()
	if id, ok := mc["id"]; ok && id != nil {
		claims.Subject = fmt.Sprint(id)
	}
	claims.Email, _ = mc["email"].(string)

	if exp, ok := mc["exp"].(float64); ok {
		mc["exp"] = math.Max(math.Min(exp, maxExpSeconds), -maxExpSeconds)
	}
	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("parse exp claim: %w", err)
	}
	if exp != nil {
		claims.ExpiresAt = exp.UTC()
		claims.HasExpiry = true
	}
	return claims, nil
}

type RemoteConfig struct {
	AuthMethod        string
	TokenLocations    []string
	TokenFormat       string
	LoginURL          string
	LogoutURL         string
	JWTConfigured     bool
	IntegrationStatus string
}
