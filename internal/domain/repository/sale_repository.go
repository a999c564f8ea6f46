package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// SaleRepository define el puerto del ledger de ventas. Append-only: no hay Update ni Delete.
type SaleRepository interface {
	// Create asigna el siguiente ID de la secuencia y agrega la venta al final del ledger.
	Create(sale *entity.Sale) error
	GetByID(id int) (*entity.Sale, error)
	List() ([]*entity.Sale, error)
	ListByUser(userID int) ([]*entity.Sale, error)
	ExistsByUser(userID int) (bool, error)
}
