package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP). Solo lectura.
type ProductRepository interface {
	GetByID(id int) (*entity.Product, error)
	List() ([]*entity.Product, error)
}
