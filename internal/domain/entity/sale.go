package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta del ledger. Inmutable una vez creada.
type Sale struct {
	ID        int
	UserID    int
	Fecha     time.Time
	Direccion string
	Pagado    bool
	Items     []LineItem
	Total     decimal.Decimal
}

// LineItem es una línea de la venta; PrecioUnitario es la foto del precio al momento de vender.
type LineItem struct {
	ProductID      int
	Cantidad       int
	PrecioUnitario decimal.Decimal
}

// Subtotal devuelve cantidad × precio unitario.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// SumItems suma los subtotales de las líneas.
func SumItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
