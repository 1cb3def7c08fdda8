package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/biocol-import-api/internal/application/auth"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	uc, err := auth.NewAuthUseCase(
		auth.DemoUser{Email: "magnus@biocol.com.br", Password: "demo123", Name: "Magnus"},
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "biocol-import"},
	)
	require.NoError(t, err)
	return uc
}

func TestLogin_IssuesToken(t *testing.T) {
	uc := newAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "Magnus@Biocol.com.br", Password: "demo123"})
	require.NoError(t, err)
	assert.Equal(t, "Magnus", out.User.Name)
	assert.Equal(t, entity.RoleCoordinator, out.User.Role)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, "magnus@biocol.com.br", claims.Email)

	me, err := uc.Me(context.Background(), claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, out.User, *me)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "magnus@biocol.com.br", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "outro@biocol.com.br", Password: "demo123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewAuthUseCase_RequiresCredentials(t *testing.T) {
	_, err := auth.NewAuthUseCase(auth.DemoUser{}, auth.JWTConfig{Secret: secret})
	assert.Error(t, err)
}
