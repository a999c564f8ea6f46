package sales

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ReceiptLine línea del comprobante con el nombre del producto resuelto.
type ReceiptLine struct {
	ProductID      int
	Nombre         string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// ReceiptBuyer datos del comprador impresos en el comprobante.
type ReceiptBuyer struct {
	ID     int
	Nombre string
	Email  string
}

// ReceiptPDFGenerator genera el PDF del comprobante de una venta.
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, buyer ReceiptBuyer, lines []ReceiptLine) ([]byte, error)
}
