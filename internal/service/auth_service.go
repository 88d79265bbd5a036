package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/eandradeg/alltelapp/internal/auth"
	"github.com/eandradeg/alltelapp/internal/config"
	"github.com/eandradeg/alltelapp/internal/domain"
	"github.com/eandradeg/alltelapp/internal/repository"
	apperrors "github.com/eandradeg/alltelapp/pkg/util"
)

// AuthService handles operator registration, login and password flows.
type AuthService struct {
	accounts repository.AccountRepository
	resets   repository.PasswordResetRepository
	tokens   *auth.TokenManager
	cfg      config.AuthConfig
	logger   *zap.Logger
	now      func() time.Time
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	ResetRepo   repository.PasswordResetRepository
	Tokens      *auth.TokenManager
	Config      config.AuthConfig
	Logger      *zap.Logger
	Now         func() time.Time
}

// RegisterAccountInput describes operator sign-up payload.
type RegisterAccountInput struct {
	Name          string
	Email         string
	Password      string
	Permisionario string
}

// LoginResult carries the issued token.
type LoginResult struct {
	Account   *domain.Account
	Token     string
	ExpiresAt time.Time
}

// NewAuthService constructs the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		accounts: deps.AccountRepo,
		resets:   deps.ResetRepo,
		tokens:   deps.Tokens,
		cfg:      deps.Config,
		logger:   logger,
		now:      now,
	}
}

// RegisterAccount creates an active operator account for a reseller.
func (s *AuthService) RegisterAccount(ctx context.Context, input RegisterAccountInput) (*domain.Account, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if !strings.Contains(input.Email, "@") {
		details["email"] = "invalid"
	}
	if len(input.Password) < 8 {
		details["password"] = "minimum 8 characters"
	}
	if strings.TrimSpace(input.Permisionario) == "" {
		details["permisionario"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid registration payload", details)
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("hash password", err)
	}

	account := &domain.Account{
		Name:          strings.TrimSpace(input.Name),
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:  hash,
		Permisionario: strings.TrimSpace(input.Permisionario),
		Status:        domain.AccountStatusActive,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("account registered",
		zap.String("account_id", account.ID),
		zap.String("permisionario", account.Permisionario))
	return account, nil
}

// Login verifies credentials and issues a reseller-scoped token.
// Unknown email and wrong password return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if account.Status != domain.AccountStatusActive {
		return nil, apperrors.NewForbidden("account disabled")
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(account.ID, account.Permisionario)
	if err != nil {
		return nil, apperrors.NewInternalError("issue token", err)
	}
	return &LoginResult{Account: account, Token: token, ExpiresAt: expiresAt}, nil
}

// ChangePassword rotates the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, current, next string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, current); err != nil {
		return apperrors.NewUnauthorized("current password incorrect")
	}
	if len(next) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	hash, err := auth.HashPassword(next, s.cfg.BcryptCost)
	if err != nil {
		return apperrors.NewInternalError("hash password", err)
	}
	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// RequestPasswordReset issues a single-use reset token. The response is
// identical whether or not the email exists, so the endpoint does not
// reveal which operators are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	account, err := s.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", apperrors.MapError(err)
	}

	ttl := time.Duration(s.cfg.PasswordResetTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	token := &repository.PasswordResetToken{
		AccountID: account.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return "", apperrors.MapError(err)
	}
	s.logger.Info("password reset requested", zap.String("account_id", account.ID))
	return token.Token, nil
}

// ConfirmPasswordReset consumes a reset token and sets a new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("invalid or expired reset token")
		}
		return apperrors.MapError(err)
	}
	if token.UsedAt != nil || s.now().After(token.ExpiresAt) {
		return apperrors.NewUnauthorized("invalid or expired reset token")
	}

	account, err := s.accounts.GetByID(ctx, token.AccountID)
	if err != nil {
		return apperrors.MapError(err)
	}
	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return apperrors.NewInternalError("hash password", err)
	}
	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.resets.MarkUsed(ctx, token.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
