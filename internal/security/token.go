package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"registrar-portal-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// ActorClaims carries the actor context the workflow authorizes against.
type ActorClaims struct {
	ActorID         int32            `json:"actor_id"`
	Email           string           `json:"email,omitempty"`
	Role            domain.ActorRole `json:"role"`
	DepartmentID    int32            `json:"department_id,omitempty"`
	DepartmentScope []int32          `json:"department_scope,omitempty"`
	CanSchedule     bool             `json:"can_schedule,omitempty"`
	CanRelease      bool             `json:"can_release,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateToken(actor *domain.Actor) (string, error)
	ValidateToken(tokenString string) (*ActorClaims, error)
}

type tokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiryMinutes int) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (m *tokenManager) GenerateToken(actor *domain.Actor) (string, error) {
	claims := ActorClaims{
		ActorID:         actor.ID,
		Email:           actor.Email,
		Role:            actor.Role,
		DepartmentID:    actor.DepartmentID,
		DepartmentScope: actor.DepartmentScope,
		CanSchedule:     actor.CanSchedule,
		CanRelease:      actor.CanRelease,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(actor.ID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "registrar-portal",
			Audience:  jwt.ClaimStrings{"api-access"},
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*ActorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*ActorClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Simple unique ID generator
func generateJTI() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16)
}
