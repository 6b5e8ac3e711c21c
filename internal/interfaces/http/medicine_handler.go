package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// MedicineHandler maneja las peticiones HTTP del catálogo.
type MedicineHandler struct {
	uc  *usecase.MedicineUseCase
	log *logger.Logger
}

// NewMedicineHandler construye el handler.
func NewMedicineHandler(uc *usecase.MedicineUseCase, log *logger.Logger) *MedicineHandler {
	return &MedicineHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear medicamento
// @Tags         medicines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMedicineRequest  true  "Datos del medicamento"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/medicines [post]
func (h *MedicineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), CallerFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	audit(h.log, c, "medicine.created").Str("resource_id", out.ID).Str("name", out.Name).Msg("medicamento creado")
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: "Medicamento '" + out.Name + "' creado",
		Data:    out,
	})
}

// GetByID godoc
// @Summary      Obtener medicamento por ID
// @Tags         medicines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del medicamento"
// @Success      200  {object}  dto.MedicineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicines/{id} [get]
func (h *MedicineHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar catálogo
// @Tags         medicines
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "categoría exacta"
// @Param        search    query  string  false  "texto contenido en el nombre"
// @Param        limit     query  int     false  "máximo 100; sin limit devuelve el catálogo completo"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MedicineListResponse
// @Router       /api/medicines [get]
func (h *MedicineHandler) List(c *fiber.Ctx) error {
	var in dto.ListMedicinesRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), CallerFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar medicamento (parcial)
// @Tags         medicines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del medicamento"
// @Param        body  body  dto.UpdateMedicineRequest  true  "campos a modificar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/medicines/{id} [patch]
func (h *MedicineHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), CallerFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	audit(h.log, c, "medicine.updated").Str("resource_id", out.ID).Msg("medicamento actualizado")
	return c.JSON(dto.MessageResponse{Message: "Medicamento actualizado", Data: out})
}

// Delete godoc
// @Summary      Eliminar medicamento (y sus facturas)
// @Tags         medicines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del medicamento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicines/{id} [delete]
func (h *MedicineHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	audit(h.log, c, "medicine.deleted").Str("resource_id", out.ID).Str("name", out.Name).Msg("medicamento eliminado")
	return c.JSON(dto.MessageResponse{Message: "Medicamento '" + out.Name + "' eliminado"})
}
