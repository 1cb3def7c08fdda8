package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// DemoUser credenciais do operador configurado.
type DemoUser struct {
	Email    string
	Password string
	Name     string
}

// AuthUseCase login do operador demo. Não há cadastro de usuários.
type AuthUseCase struct {
	user   *entity.User
	jwtCfg JWTConfig
}

// NewAuthUseCase guarda o hash bcrypt da senha configurada; a senha em claro não fica em memória.
func NewAuthUseCase(demo DemoUser, jwtCfg JWTConfig) (*AuthUseCase, error) {
	if demo.Email == "" || demo.Password == "" {
		return nil, fmt.Errorf("auth: email e senha do usuário demo são obrigatórios")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := demo.Name
	if name == "" {
		name = demo.Email
	}
	return &AuthUseCase{
		user: &entity.User{
			ID:           uuid.NewSHA1(uuid.NameSpaceURL, []byte("biocol:user:"+strings.ToLower(demo.Email))).String(),
			Name:         name,
			Email:        strings.ToLower(demo.Email),
			PasswordHash: string(hash),
			Role:         entity.RoleCoordinator,
		},
		jwtCfg: jwtCfg,
	}, nil
}

// Login verifica email/senha e gera o JWT.
func (uc *AuthUseCase) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email e senha são obrigatórios", domain.ErrInvalidInput)
	}
	if email != uc.user.Email {
		return nil, fmt.Errorf("%w: credenciais inválidas", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciais inválidas", domain.ErrUnauthorized)
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, uc.user.ID, uc.user.Email, uc.user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      toUserResponse(uc.user),
	}, nil
}

// Me operador do token.
func (uc *AuthUseCase) Me(_ context.Context, userID string) (*dto.UserResponse, error) {
	if userID != uc.user.ID {
		return nil, fmt.Errorf("%w: usuário %s", domain.ErrNotFound, userID)
	}
	out := toUserResponse(uc.user)
	return &out, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
