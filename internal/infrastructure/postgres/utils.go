package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier operaciones comunes a *pgxpool.Pool y pgx.Tx: los repos funcionan igual dentro
// y fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	codeUniqueViolation = "23505"
	codeInvalidTextRepr = "22P02"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == codeUniqueViolation
}

// isInvalidText el valor no se pudo convertir al tipo de la columna (ej. un id que no es UUID).
// Para búsquedas por id equivale a "no existe".
func isInvalidText(err error) bool {
	return pgErrorCode(err) == codeInvalidTextRepr
}

// nullIfZero convierte 0 en NULL para parámetros opcionales.
func nullIfZero(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

// nullIfEmpty convierte "" en NULL para parámetros opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
