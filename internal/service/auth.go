package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/logger"
	"registrar-portal-backend/internal/repository"
	"registrar-portal-backend/internal/security"
)

type authService struct {
	actorRepo repository.ActorRepository
	auditRepo repository.AuditLogRepository
	tokens    security.TokenManager
}

func NewAuthService(
	actorRepo repository.ActorRepository,
	auditRepo repository.AuditLogRepository,
	tokens security.TokenManager,
) AuthService {
	return &authService{
		actorRepo: actorRepo,
		auditRepo: auditRepo,
		tokens:    tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Actor, error) {
	actor, err := s.actorRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same failure as a wrong password; don't leak which emails exist.
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, err
	}

	if !actor.Active {
		return "", nil, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Failed login attempt", "email", email)
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(actor)
	if err != nil {
		return "", nil, err
	}

	_ = s.auditRepo.Append(ctx, &domain.AuditLogEntry{
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		Activity:     "Logged In",
		ActivityType: domain.ActivityTypeAuth,
	})

	return token, actor, nil
}
