package usecase

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función con acceso exclusivo a las colecciones, pasando repositorios
// atados a ese acceso. Garantiza que leer-validar-escribir sea atómico entre colecciones.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		userRepo repository.UserRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
