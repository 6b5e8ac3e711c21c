package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, logout y admin inicial.
// El registro de cuentas no vive aquí: es una operación de admin (usecase.UserUseCase).
type AuthUseCase struct {
	userRepo    repository.UserRepository
	revocations TokenRevocationStore
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, revocations TokenRevocationStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, revocations: revocations, jwtCfg: jwtCfg}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, domain.Invalid("username", "username es requerido")
	}
	if in.Password == "" {
		return nil, domain.Invalid("password", "password es requerido")
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, claims, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAtTime(),
		User:      toUserResponse(user),
	}, nil
}

// Logout revoca el token presentado hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, caller authz.Caller, tokenID string, expiresAt time.Time) error {
	if err := authz.Require(caller, "logout", authz.IsAuthenticated); err != nil {
		return err
	}
	if tokenID == "" {
		return domain.Invalid("token", "token sin identificador")
	}
	return uc.revocations.Revoke(ctx, tokenID, expiresAt)
}

// IsRevoked consulta la lista de revocación (usado por el middleware JWT).
func (uc *AuthUseCase) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return uc.revocations.IsRevoked(ctx, tokenID)
}

// ResolveCaller reconstruye la identidad del llamador desde el usuario almacenado.
// Un usuario eliminado devuelve ErrUnauthenticated aunque su token siga vigente.
func (uc *AuthUseCase) ResolveCaller(ctx context.Context, userID string) (authz.Caller, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return authz.Caller{}, err
	}
	if user == nil {
		return authz.Caller{}, domain.ErrUnauthenticated
	}
	return authz.Caller{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// EnsureAdmin crea el admin inicial si no existe un usuario con ese username.
// Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, password, fullName string) (bool, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if len(password) > entity.MaxPasswordLen {
		return false, domain.Invalid("password", "password no puede superar 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil // otra réplica lo creó primero
		}
		return false, err
	}
	return true, nil
}

// toUserResponse convierte la entidad en DTO (sin hash de password).
func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role.String(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
