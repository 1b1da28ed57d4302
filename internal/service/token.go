package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"branches-api/internal/model"
)

// TokenService issues and validates self-contained HS256 tokens. Validity is
// purely a function of the token bytes, the signing secret and the wall
// clock; nothing is persisted server-side.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL time.Duration, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) IssueAccessToken(subject string) (string, error) {
	return s.sign(jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().UTC().Add(s.accessTTL).Unix(),
	})
}

func (s *TokenService) IssueRefreshToken(subject string) (string, error) {
	return s.sign(jwt.MapClaims{
		"sub":  subject,
		"type": string(model.TokenKindRefresh),
		"exp":  time.Now().UTC().Add(s.refreshTTL).Unix(),
	})
}

// Decode verifies signature and expiry. Expiry is checked against the wall
// clock with no leeway window.
func (s *TokenService) Decode(tokenString string) (model.Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Claims{}, model.ErrTokenExpired
		}
		return model.Claims{}, model.ErrTokenInvalid
	}
	if !parsed.Valid {
		return model.Claims{}, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.Claims{}, model.ErrTokenInvalid
	}

	subject, _ := claimsMap["sub"].(string)
	if subject == "" {
		return model.Claims{}, model.ErrTokenInvalid
	}

	claims := model.Claims{Subject: subject, Kind: model.TokenKindAccess}
	if typ, _ := claimsMap["type"].(string); typ == string(model.TokenKindRefresh) {
		claims.Kind = model.TokenKindRefresh
	}
	if exp, expErr := claimsMap.GetExpirationTime(); expErr == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}

func (s *TokenService) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
