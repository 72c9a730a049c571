package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/auth"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/pkg/jwt"
)

type memUsers struct {
	byID map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	for _, x := range m.byID {
		if x.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

const secret = "auth-test-secret"

func newUseCase() (*auth.AuthUseCase, *memUsers) {
	users := newMemUsers()
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}), users
}

func TestRegisterAndLogin(t *testing.T) {
	uc, users := newUseCase()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Acente@Example.com ", Password: "gizli-sifre"})
	require.NoError(t, err)
	assert.Equal(t, "acente@example.com", u.Email)
	assert.Equal(t, "acente@example.com", u.Name, "sin nombre se usa el email")
	assert.NotEqual(t, "gizli-sifre", users.byID[u.ID].PasswordHash)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "acente@example.com", Password: "gizli-sifre"})
	require.NoError(t, err)
	userID, email, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "acente@example.com", email)

	me, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Errores(t *testing.T) {
	uc, users := newUseCase()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@b.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "yanlis"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	users.byID[u.ID].Status = entity.UserStatusDisabled
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
