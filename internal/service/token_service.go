package service

import (
	"fmt"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTTokenService implements ports.TokenService using HS256 JWT. The token
// audience is the caller's role, so a seller token cannot be replayed on an
// admin route.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed JWT for subjectID with role as its audience.
func (s *JWTTokenService) Generate(subjectID uuid.UUID, role domain.Role) (string, time.Time, error) {
	if !role.IsValid() {
		return "", time.Time{}, fmt.Errorf("unknown role %q", role)
	}

	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subjectID.String(),
		Audience:  jwt.ClaimStrings{string(role)},
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses a token and builds the caller identity from it.
func (s *JWTTokenService) Validate(tokenString string) (domain.Identity, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parsing token: %w", err)
	}

	if len(claims.Audience) != 1 {
		return domain.Identity{}, fmt.Errorf("token must carry exactly one audience")
	}
	role := domain.Role(claims.Audience[0])
	if !role.IsValid() {
		return domain.Identity{}, fmt.Errorf("unknown audience %q", role)
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("invalid subject in token: %w", err)
	}

	return domain.Identity{SubjectID: subjectID, Role: role, TokenID: claims.ID}, nil
}
