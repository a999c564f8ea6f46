package dto

import "github.com/shopspring/decimal"

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID        int             `json:"id"`
	Nombre    string          `json:"nombre"`
	Desc      string          `json:"desc"`
	Precio    decimal.Decimal `json:"precio"`
	Categoria string          `json:"categoria,omitempty"`
	Activo    bool            `json:"activo"`
	Imagen    string          `json:"imagen,omitempty"`
}
