package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. Solo lectura desde el flujo de ventas.
type Product struct {
	ID        int
	Nombre    string
	Desc      string
	Precio    decimal.Decimal // precio vigente; se copia a la línea al vender
	Categoria string
	Activo    bool
	Imagen    string
}
