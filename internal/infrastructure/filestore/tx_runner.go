package filestore

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con el lock de escritura del Store tomado, de modo que
// leer-validar-escribir sobre varias colecciones sea atómico frente a otras peticiones.
// No hay rollback: si fn falla antes de escribir, nada cambia en disco.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run toma el lock, ejecuta fn con repos atados a la Tx y lo libera.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.update(func(dir string) error {
		tx := &Tx{dir: dir}
		return fn(NewProductRepository(tx), NewUserRepository(tx), NewSaleRepository(tx))
	})
}
