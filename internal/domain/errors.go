package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthenticated    = errors.New("credenciales de autenticación no provistas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")
	ErrTokenRevoked       = errors.New("token revocado")
)

// ValidationError regla de dominio incumplida sobre un campo concreto de la petición.
// errors.Is(err, ErrInvalidInput) es true para cualquier ValidationError;
// las violaciones de unicidad además cumplen errors.Is(err, ErrDuplicate).
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un ValidationError para el campo indicado.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message, Err: ErrInvalidInput}
}

// Duplicate construye un ValidationError por violación de unicidad.
func Duplicate(field, message string) error {
	return &ValidationError{Field: field, Message: message, Err: ErrDuplicate}
}

// NotFoundError el recurso referenciado por ID no existe.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound construye un NotFoundError.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ForbiddenError identidad válida sin el rol que exige la operación.
type ForbiddenError struct {
	Operation string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("no tiene permiso para realizar esta acción (%s)", e.Operation)
}

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// Forbidden construye un ForbiddenError para la operación indicada.
func Forbidden(operation string) error {
	return &ForbiddenError{Operation: operation}
}
