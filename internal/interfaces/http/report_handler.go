package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/reporting"
)

// ReportHandler reportes del dashboard (solo admin).
type ReportHandler struct {
	uc *reporting.ReportUseCase
}

func NewReportHandler(uc *reporting.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Stock godoc
// @Summary      Stock por medicamento
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockItemDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.StockReport(c.UserContext(), CallerFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  start_date y end_date (YYYY-MM-DD, inclusivos) solo filtran si vienen ambos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        staff_id    query  string  false  "ID del staff"
// @Success      200  {array}   dto.SalesReportItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/reports [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.SalesReport(c.UserContext(), CallerFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
