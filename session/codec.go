package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"dinedash/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/thejerf/abtime"
)

// Codec turns an identity into a cookie value and back.
type Codec interface {
	Encode(id models.Identity) (string, error)
	// Decode returns ErrSessionInvalid for anything it cannot read.
	Decode(token string) (*models.Identity, error)
}

type identityClaims struct {
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec signs the identity as an HS256 token that expires after TTL.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	clock  abtime.AbstractTime
}

// NewJWTCodec returns a codec signing with secret. A nil clock means real time.
func NewJWTCodec(secret string, ttl time.Duration, clock abtime.AbstractTime) *JWTCodec {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl, clock: clock}
}

func (j *JWTCodec) Encode(id models.Identity) (string, error) {
	if len(j.secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := j.clock.Now()
	claims := identityClaims{
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

func (j *JWTCodec) Decode(token string) (*models.Identity, error) {
	claims := &identityClaims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.clock.Now),
	)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 0)
	if err != nil || id == 0 || claims.Email == "" {
		return nil, fmt.Errorf("%w: bad claims", ErrSessionInvalid)
	}
	return &models.Identity{
		ID:    uint(id),
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}

// JSONCodec stores the identity as plain, unsigned JSON. The value is
// advisory: ResolveSession always re-reads the user record.
type JSONCodec struct{}

func (JSONCodec) Encode(id models.Identity) (string, error) {
	b, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSONCodec) Decode(token string) (*models.Identity, error) {
	var id models.Identity
	if err := json.Unmarshal([]byte(token), &id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}
	if id.ID == 0 || id.Email == "" {
		return nil, fmt.Errorf("%w: missing id or email", ErrSessionInvalid)
	}
	return &id, nil
}
