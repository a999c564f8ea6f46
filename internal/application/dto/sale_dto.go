package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
// id_usuario y total se aceptan en el cuerpo pero se ignoran: el usuario sale del token
// y el total se recalcula en el servidor.
type CreateSaleRequest struct {
	Direccion string                  `json:"direccion"`
	Productos []CreateSaleItemRequest `json:"productos"`
	Pagado    *bool                   `json:"pagado"`
	UserID    *int                    `json:"id_usuario,omitempty"`
	Total     *decimal.Decimal        `json:"total,omitempty"`
}

// CreateSaleItemRequest una línea del carrito.
type CreateSaleItemRequest struct {
	ProductID      int              `json:"id_producto"`
	Cantidad       int              `json:"cantidad"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario,omitempty"`
}

// SaleItemResponse línea de una venta.
type SaleItemResponse struct {
	ProductID      int             `json:"id_producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// SaleResponse salida de una venta del ledger.
type SaleResponse struct {
	ID        int                `json:"id"`
	UserID    int                `json:"id_usuario"`
	Fecha     time.Time          `json:"fecha"`
	Total     decimal.Decimal    `json:"total"`
	Direccion string             `json:"direccion"`
	Productos []SaleItemResponse `json:"productos"`
	Pagado    bool               `json:"pagado"`
}
