package entity

import "time"

// Role rol de un usuario. Comparación plana: ningún rol implica a otro.
type Role string

// Roles válidos para User.
const (
	RoleAdmin            Role = "admin"
	RoleInventoryManager Role = "inventory_manager"
	RoleStaff            Role = "staff"
)

// MaxPasswordLen bcrypt sólo considera los primeros 72 bytes de la contraseña.
const MaxPasswordLen = 72

// Valid indica si r es uno de los tres roles definidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInventoryManager, RoleStaff:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User representa una cuenta del sistema. Solo un admin la crea, modifica o elimina.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	FullName     string
	PhoneNumber  string // opcional
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
