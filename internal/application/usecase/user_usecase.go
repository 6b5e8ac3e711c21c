package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen    = 8
	maxUsernameLen    = 150
	maxFullNameLen    = 255
	maxPhoneNumberLen = 15
)

// UserUseCase gestión de cuentas. Todas las operaciones son exclusivas del rol admin:
// no existe auto-registro.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Register crea una cuenta con password hasheado (bcrypt). Role vacío equivale a staff.
func (uc *UserUseCase) Register(ctx context.Context, caller authz.Caller, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if err := authz.Require(caller, "register_user", authz.IsAdmin); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(in.FullName)
	if err := validateFullName(fullName); err != nil {
		return nil, err
	}
	if err := validatePhone(in.PhoneNumber); err != nil {
		return nil, err
	}
	role := entity.RoleStaff
	if in.Role != "" {
		role = entity.Role(in.Role)
		if !role.Valid() {
			return nil, domain.Invalid("role", "rol inválido: use admin, inventory_manager o staff")
		}
	}

	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("username", "ya existe un usuario con ese username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		PhoneNumber:  in.PhoneNumber,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, caller authz.Caller, id string) (*dto.UserResponse, error) {
	if err := authz.Require(caller, "get_user", authz.IsAdmin); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios, opcionalmente filtrando por rol.
func (uc *UserUseCase) List(ctx context.Context, caller authz.Caller, in dto.ListUsersRequest) (*dto.UserListResponse, error) {
	if err := authz.Require(caller, "list_users", authz.IsAdmin); err != nil {
		return nil, err
	}
	in.DefaultPage()
	role := entity.Role(in.Role)
	if in.Role != "" && !role.Valid() {
		return nil, domain.Invalid("role", "rol inválido")
	}
	list, err := uc.repo.List(ctx, repository.UserFilter{Role: role, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Update actualiza parcialmente un usuario: solo cambian los campos presentes.
func (uc *UserUseCase) Update(ctx context.Context, caller authz.Caller, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := authz.Require(caller, "update_user", authz.IsAdmin); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		if username != user.Username {
			other, err := uc.repo.GetByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.Duplicate("username", "ya existe un usuario con ese username")
			}
		}
		user.Username = username
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.FullName != nil {
		fullName := strings.TrimSpace(*in.FullName)
		if err := validateFullName(fullName); err != nil {
			return nil, err
		}
		user.FullName = fullName
	}
	if in.PhoneNumber != nil {
		if err := validatePhone(*in.PhoneNumber); err != nil {
			return nil, err
		}
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Role != nil {
		role := entity.Role(*in.Role)
		if !role.Valid() {
			return nil, domain.Invalid("role", "rol inválido: use admin, inventory_manager o staff")
		}
		user.Role = role
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina el usuario y en cascada sus facturas. Devuelve el usuario eliminado.
func (uc *UserUseCase) Delete(ctx context.Context, caller authz.Caller, id string) (*dto.UserResponse, error) {
	if err := authz.Require(caller, "delete_user", authz.IsAdmin); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *UserUseCase) load(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("usuario", id)
	}
	return user, nil
}

func validateUsername(username string) error {
	if username == "" {
		return domain.Invalid("username", "username es requerido")
	}
	if len(username) > maxUsernameLen {
		return domain.Invalid("username", "username demasiado largo")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return domain.Invalid("password", "password debe tener al menos 8 caracteres")
	}
	if len(password) > entity.MaxPasswordLen {
		return domain.Invalid("password", "password no puede superar 72 bytes")
	}
	return nil
}

func validateFullName(fullName string) error {
	if fullName == "" {
		return domain.Invalid("full_name", "full_name es requerido")
	}
	if len(fullName) > maxFullNameLen {
		return domain.Invalid("full_name", "full_name demasiado largo")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > maxPhoneNumberLen {
		return domain.Invalid("phone_number", "phone_number admite máximo 15 caracteres")
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role.String(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
