package entity

import "github.com/shopspring/decimal"

// Los montos se serializan como números JSON (los archivos heredados ya los guardan así).
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
