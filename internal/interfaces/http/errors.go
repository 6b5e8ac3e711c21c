package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

// LocalError guarda el error interno para que RequestLogger lo registre.
const LocalError = "error"

// writeError traduce un error de dominio a su respuesta HTTP:
//
//	ErrUnauthenticated / ErrTokenRevoked / ErrInvalidCredentials → 401
//	ErrForbidden                                                → 403
//	ValidationError (ErrInvalidInput)                           → 400 (+ field)
//	NotFoundError (ErrNotFound)                                 → 404
//	cualquier otro                                              → 500 sin detalle
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrTokenRevoked):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			resp.Field = ve.Field
			resp.Message = ve.Message
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		c.Locals(LocalError, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}

// invalidBody respuesta para JSON mal formado o tipos incorrectos.
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// invalidQuery respuesta para parámetros de consulta con tipos incorrectos.
func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de consulta inválidos"})
}

// ErrorHandler responde en formato dto.ErrorResponse los errores que no pasan por writeError
// (rutas inexistentes, métodos no permitidos, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	switch code {
	case fiber.StatusNotFound:
		return c.Status(code).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ruta no encontrada"})
	case fiber.StatusMethodNotAllowed:
		return c.Status(code).JSON(dto.ErrorResponse{Code: "METHOD_NOT_ALLOWED", Message: "método no permitido"})
	case fiber.StatusInternalServerError:
		c.Locals(LocalError, err)
		return c.Status(code).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	default:
		return c.Status(code).JSON(dto.ErrorResponse{Code: "ERROR", Message: err.Error()})
	}
}
