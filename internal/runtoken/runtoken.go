package runtoken

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "studycentre"

const (
	SourcePage = "page"
	SourceBank = "bank"
)

var jwtSecret []byte

var (
	ErrUnknownSource = errors.New("unknown run source")
	ErrNotConfigured = errors.New("run token secret not configured")
)

// Source identifies where the questions of a run come from. Bank runs pin
// the sampled question ids so the run can be rebuilt on every request.
type Source struct {
	Kind      string   `json:"k"`
	Ref       string   `json:"r"`
	Questions []string `json:"q,omitempty"`
}

type Claims struct {
	Source  Source         `json:"src"`
	Answers map[string]int `json:"ans,omitempty"`
	jwt.RegisteredClaims
}

func Init() {
	secret := os.Getenv("RUN_TOKEN_SECRET")
	if len(secret) < 32 {
		panic("RUN_TOKEN_SECRET must be at least 32 bytes")
	}
	jwtSecret = []byte(secret)
}

// Generate signs the state of a quiz run. The server keeps no copy of it.
func Generate(src Source, answers map[string]int, ttl time.Duration) (string, error) {
	if len(jwtSecret) == 0 {
		return "", ErrNotConfigured
	}
	if src.Kind != SourcePage && src.Kind != SourceBank {
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, src.Kind)
	}

	now := time.Now()
	claims := Claims{
		Source:  src,
		Answers: answers,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// Refresh re-signs claims with new answers, keeping the run id.
func Refresh(c *Claims, answers map[string]int, ttl time.Duration) (string, error) {
	if len(jwtSecret) == 0 {
		return "", ErrNotConfigured
	}
	now := time.Now()
	next := Claims{
		Source:  c.Source,
		Answers: answers,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.ID,
			Issuer:    issuer,
			IssuedAt:  c.IssuedAt,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, next).SignedString(jwtSecret)
}

func Validate(tokenStr string) (*Claims, error) {
	if len(jwtSecret) == 0 {
		return nil, ErrNotConfigured
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
