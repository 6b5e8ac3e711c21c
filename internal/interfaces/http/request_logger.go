package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-api/internal/infrastructure/observability/metrics"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// HeaderRequestID cabecera de correlación; se respeta la del cliente si viene.
const HeaderRequestID = "X-Request-ID"

// LocalRequestID clave en Locals del request id.
const LocalRequestID = "request_id"

// RequestLogger emite un evento por petición con método, ruta, status, latencia e identidad.
// Los errores de la cadena se resuelven aquí con el ErrorHandler de la app para registrar
// el status definitivo.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(LocalRequestID, reqID)
		c.Set(HeaderRequestID, reqID)

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var ev = log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		if err, ok := c.Locals(LocalError).(error); ok {
			ev = ev.Err(err)
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Str("role", GetRole(c)).
			Msg("http request")
		return nil
	}
}

// Metrics registra contador e histograma Prometheus por método, ruta y status.
// La ruta es el patrón registrado (ej. /api/medicines/:id).
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		route := c.Route().Path
		if status == fiber.StatusNotFound && err != nil {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Method(), route, strconv.Itoa(status), time.Since(start))
		return err
	}
}

// audit evento de auditoría con el actor y el request id ya cargados.
func audit(log *logger.Logger, c *fiber.Ctx, action string) *zerolog.Event {
	reqID, _ := c.Locals(LocalRequestID).(string)
	return log.Audit(action).
		Str("actor_id", GetUserID(c)).
		Str("actor_role", GetRole(c)).
		Str("request_id", reqID)
}
