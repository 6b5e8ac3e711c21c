package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/farmacia-api/internal/application/billing"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// BillHandler maneja la facturación (protegido).
type BillHandler struct {
	uc      *billing.CreateBillUseCase
	receipt *billing.ReceiptUseCase
	log     *logger.Logger
}

// NewBillHandler construye el handler. receipt puede ser nil si no hay generador de PDF.
func NewBillHandler(uc *billing.CreateBillUseCase, receipt *billing.ReceiptUseCase, log *logger.Logger) *BillHandler {
	return &BillHandler{uc: uc, receipt: receipt, log: log}
}

// Create godoc
// @Summary      Registrar una venta
// @Description  El staff se toma del token y el total lo calcula el servidor (precio × cantidad).
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "medicine_id, quantity, packaging_type"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/billing [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	bill, err := h.uc.CreateBill(c.UserContext(), CallerFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	audit(h.log, c, "bill.created").
		Str("resource_id", bill.ID).
		Str("medicine_id", bill.MedicineID).
		Int("quantity", bill.Quantity).
		Str("total_price", bill.TotalPrice.StringFixed(2)).
		Msg("factura creada")
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Factura creada", Data: bill})
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	bill, err := h.uc.GetBill(c.UserContext(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bill)
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Description  Admin, o el staff que registró la venta.
// @Tags         billing
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/receipt [get]
func (h *BillHandler) Receipt(c *fiber.Ctx) error {
	if h.receipt == nil {
		return fiber.ErrNotFound
	}
	pdfBytes, filename, err := h.receipt.DownloadReceiptPDF(c.UserContext(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
