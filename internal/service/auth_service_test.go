package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/eandradeg/alltelapp/internal/auth"
	"github.com/eandradeg/alltelapp/internal/config"
	"github.com/eandradeg/alltelapp/internal/domain"
	"github.com/eandradeg/alltelapp/internal/repository"
)

type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *memAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account.ID = fmt.Sprintf("acc-%d", len(r.accounts)+1)
	account.CreatedAt = time.Now()
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *memAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *account
	return &found, nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			found := *account
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*repository.PasswordResetToken
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *memResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = fmt.Sprintf("rst-%d", len(r.tokens)+1)
	stored := *token
	r.tokens[token.Token] = &stored
	return nil
}

func (r *memResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *token
	return &found, nil
}

func (r *memResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newTestAuthService() (*AuthService, *memAccountRepo, *memResetRepo) {
	accounts := newMemAccountRepo()
	resets := newMemResetRepo()
	svc := NewAuthService(AuthDependencies{
		AccountRepo: accounts,
		ResetRepo:   resets,
		Tokens:      auth.NewTokenManager("test-secret", 60),
		Config: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			// Minimum cost keeps the hashing fast in tests.
			BcryptCost: 4,
		},
	})
	return svc, accounts, resets
}

func registerTestAccount(t *testing.T, svc *AuthService) *domain.Account {
	t.Helper()
	account, err := svc.RegisterAccount(context.Background(), RegisterAccountInput{
		Name:          "Operador Uno",
		Email:         "operador@alltel.ec",
		Password:      "super-secreta",
		Permisionario: "ALLTEL",
	})
	require.NoError(t, err)
	return account
}

func TestRegisterAccountValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()

	_, err := svc.RegisterAccount(context.Background(), RegisterAccountInput{
		Name: "", Email: "no-arroba", Password: "corta", Permisionario: "",
	})
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestLoginIssuesScopedToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()
	registerTestAccount(t, svc)

	result, err := svc.Login(context.Background(), "Operador@Alltel.ec", "super-secreta")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "ALLTEL", result.Account.Permisionario)

	claims, err := auth.NewTokenManager("test-secret", 60).ParseToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, "ALLTEL", claims.Permisionario)
	require.Equal(t, result.Account.ID, claims.AccountID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	svc, accounts, _ := newTestAuthService()
	account := registerTestAccount(t, svc)
	ctx := context.Background()

	_, err := svc.Login(ctx, "operador@alltel.ec", "equivocada")
	requireDomainCode(t, err, "UNAUTHORIZED")

	_, err = svc.Login(ctx, "nadie@alltel.ec", "super-secreta")
	requireDomainCode(t, err, "UNAUTHORIZED")

	account.Status = domain.AccountStatusInactive
	require.NoError(t, accounts.Update(ctx, account))
	_, err = svc.Login(ctx, "operador@alltel.ec", "super-secreta")
	requireDomainCode(t, err, "FORBIDDEN")
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()
	account := registerTestAccount(t, svc)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, account.ID, "equivocada", "otra-secreta")
	requireDomainCode(t, err, "UNAUTHORIZED")

	require.NoError(t, svc.ChangePassword(ctx, account.ID, "super-secreta", "otra-secreta"))

	_, err = svc.Login(ctx, "operador@alltel.ec", "super-secreta")
	requireDomainCode(t, err, "UNAUTHORIZED")
	_, err = svc.Login(ctx, "operador@alltel.ec", "otra-secreta")
	require.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()
	registerTestAccount(t, svc)
	ctx := context.Background()

	// Unknown emails do not error and do not issue tokens.
	token, err := svc.RequestPasswordReset(ctx, "nadie@alltel.ec")
	require.NoError(t, err)
	require.Empty(t, token)

	token, err = svc.RequestPasswordReset(ctx, "operador@alltel.ec")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token, "nueva-secreta"))

	_, err = svc.Login(ctx, "operador@alltel.ec", "nueva-secreta")
	require.NoError(t, err)

	// The token is single use.
	err = svc.ConfirmPasswordReset(ctx, token, "otra-mas")
	requireDomainCode(t, err, "UNAUTHORIZED")

	err = svc.ConfirmPasswordReset(ctx, "token-inexistente", "nueva-secreta")
	requireDomainCode(t, err, "UNAUTHORIZED")
}
