package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"cyclerent-backend/internal/domain"
	"cyclerent-backend/internal/logger"
	"cyclerent-backend/internal/repository"
	"cyclerent-backend/internal/security"
)

type authService struct {
	operatorRepo repository.OperatorRepository
	tokens       security.TokenManager
}

func NewAuthService(operatorRepo repository.OperatorRepository, tokens security.TokenManager) AuthService {
	return &authService{
		operatorRepo: operatorRepo,
		tokens:       tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Operator, string, string, error) {
	op, err := s.operatorRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same failure regardless of whether the account exists.
		return nil, "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(op.ID, op.Email, string(op.Role))
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(op.ID, op.Email)
	if err != nil {
		return nil, "", "", err
	}

	logger.Info("operator logged in", "operator_id", op.ID, "email", op.Email)
	return op, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	op, err := s.operatorRepo.GetByID(ctx, claims.OperatorID)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(op.ID, op.Email, string(op.Role))
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.tokens.GenerateRefreshToken(op.ID, op.Email)
	if err != nil {
		return "", "", err
	}
	return access, newRefresh, nil
}

// EnsureDefaultOperator seeds the bootstrap admin account on first start.
// Existing accounts are left alone, including their password.
func (s *authService) EnsureDefaultOperator(ctx context.Context, email, name, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.operatorRepo.GetByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	op := &domain.Operator{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.OperatorRoleAdmin,
	}
	if err := s.operatorRepo.Create(ctx, op); err != nil {
		return err
	}
	logger.Info("bootstrap operator created", "email", email)
	return nil
}
