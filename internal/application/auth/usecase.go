package auth

import (
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Identity es la cuenta que actúa en una petición autenticada.
type Identity struct {
	UserID int
	Email  string
}

// AuthUseCase casos de uso de autenticación: login y verificación de token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password contra la credencial guardada (hash o legado) y emite un JWT.
// ErrInvalidInput si faltan campos, ErrUnauthorized si las credenciales no coinciden,
// ErrForbidden si la cuenta está inactiva.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	cred := user.Credential()
	if cred == nil || !cred.Verify(in.Password) {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Mensaje: "Login correcto",
		Token:   token,
		Usuario: *usecase.ToUserResponse(user),
	}, nil
}

// Authenticate resuelve un bearer token a la identidad de la cuenta.
// ErrUnauthorized si falta o no es válido.
func (uc *AuthUseCase) Authenticate(token string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token vacío", domain.ErrUnauthorized)
	}
	userID, email, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return &Identity{UserID: userID, Email: email}, nil
}
