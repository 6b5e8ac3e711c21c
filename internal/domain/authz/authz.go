// Package authz contiene los predicados de autorización por rol.
//
// Cada caso de uso recibe explícitamente el Caller resuelto por la capa HTTP
// (a partir del JWT) y declara exactamente los roles que acepta. No hay jerarquía:
// un admin NO satisface IsInventoryManager ni IsStaff.
package authz

import (
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// Caller identidad autenticada que invoca una operación.
// El valor cero representa a un llamador anónimo.
type Caller struct {
	UserID   string
	Username string
	Role     entity.Role
}

// Anonymous devuelve un Caller sin identidad.
func Anonymous() Caller { return Caller{} }

// Authenticated es true si el llamador presentó una identidad válida.
func (c Caller) Authenticated() bool { return c.UserID != "" }

// Predicate decide si un Caller puede ejecutar una operación.
type Predicate func(Caller) bool

// IsAdmin true si el llamador está autenticado y su rol es admin.
func IsAdmin(c Caller) bool { return c.Authenticated() && c.Role == entity.RoleAdmin }

// IsInventoryManager true si el llamador está autenticado y su rol es inventory_manager.
func IsInventoryManager(c Caller) bool {
	return c.Authenticated() && c.Role == entity.RoleInventoryManager
}

// IsStaff true si el llamador está autenticado y su rol es staff.
func IsStaff(c Caller) bool { return c.Authenticated() && c.Role == entity.RoleStaff }

// IsAuthenticated acepta cualquier identidad válida, sin importar el rol.
func IsAuthenticated(c Caller) bool { return c.Authenticated() }

// Require devuelve nil si alguno de los predicados acepta al llamador.
// Un llamador anónimo recibe ErrUnauthenticated; uno autenticado sin el rol
// requerido recibe un ForbiddenError para la operación.
func Require(c Caller, operation string, preds ...Predicate) error {
	if !c.Authenticated() {
		return domain.ErrUnauthenticated
	}
	for _, p := range preds {
		if p(c) {
			return nil
		}
	}
	return domain.Forbidden(operation)
}
