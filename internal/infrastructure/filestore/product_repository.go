package filestore

import (
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre productos.json (usable con Store o Tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id int) (*entity.Product, error) {
	var found *entity.Product
	err := r.q.view(func(dir string) error {
		recs, err := readCollection[productRecord](dir, CollectionProductos)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if rec.ID == id {
				found = rec.toEntity()
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return found, nil
}

// List devuelve el catálogo completo en el orden del archivo.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.q.view(func(dir string) error {
		recs, err := readCollection[productRecord](dir, CollectionProductos)
		if err != nil {
			return err
		}
		list = make([]*entity.Product, 0, len(recs))
		for _, rec := range recs {
			list = append(list, rec.toEntity())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// ReplaceProducts reemplaza el catálogo completo. Lo usa la carga inicial del catálogo;
// el flujo de ventas nunca escribe productos.
func ReplaceProducts(s *Store, products []*entity.Product) error {
	recs := make([]productRecord, 0, len(products))
	for _, p := range products {
		recs = append(recs, productRecordFrom(p))
	}
	return Save(s, CollectionProductos, recs)
}
