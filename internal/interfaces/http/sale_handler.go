package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/sales"
)

// SaleHandler maneja el ledger de ventas y los comprobantes.
type SaleHandler struct {
	createSale *sales.CreateSaleUseCase
	receipt    *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createSale *sales.CreateSaleUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{createSale: createSale, receipt: receipt}
}

// Create godoc
// @Summary      Registrar venta
// @Description  El usuario se toma del token; id_usuario y total del cuerpo se ignoran.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "direccion, productos, pagado"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID <= 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no autenticado"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createSale.CreateSale(c.UserContext(), userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Produce      json
// @Param        id_usuario  query  int  false  "Filtrar por usuario"
// @Success      200  {array}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	userID := 0
	if raw := c.Query("id_usuario"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return invalidID(c)
		}
		userID = id
	}
	out, err := h.createSale.List(userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         ventas
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.createSale.GetSale(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Description  Solo el comprador de la venta puede descargarlo.
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/comprobante [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	pdfBytes, filename, err := h.receipt.DownloadReceipt(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
