package filestore

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del ledger de ventas sobre ventas.json.
// Los registros existentes se reescriben tal cual; solo se agrega al final.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador del ledger.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create asigna el siguiente ID y agrega la venta al final del ledger.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	err := r.q.update(func(dir string) error {
		raws, err := readCollection[json.RawMessage](dir, CollectionVentas)
		if err != nil {
			return err
		}
		highest, err := maxID(CollectionVentas, raws)
		if err != nil {
			return err
		}
		id, err := nextID(dir, CollectionVentas, highest)
		if err != nil {
			return err
		}
		sale.ID = id
		raw, err := json.Marshal(saleRecordFrom(sale))
		if err != nil {
			return err
		}
		return writeCollection(dir, CollectionVentas, append(raws, raw))
	})
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id int) (*entity.Sale, error) {
	list, err := r.filter(func(s saleRecord) bool { return s.ID == id })
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// List devuelve el ledger completo en orden de inserción.
func (r *SaleRepo) List() ([]*entity.Sale, error) {
	return r.filter(func(saleRecord) bool { return true })
}

// ListByUser devuelve las ventas de un usuario.
func (r *SaleRepo) ListByUser(userID int) ([]*entity.Sale, error) {
	return r.filter(func(s saleRecord) bool { return s.UserID == userID })
}

// ExistsByUser indica si alguna venta referencia al usuario.
func (r *SaleRepo) ExistsByUser(userID int) (bool, error) {
	list, err := r.ListByUser(userID)
	if err != nil {
		return false, err
	}
	return len(list) > 0, nil
}

func (r *SaleRepo) filter(match func(saleRecord) bool) ([]*entity.Sale, error) {
	var list []*entity.Sale
	err := r.q.view(func(dir string) error {
		recs, err := readCollection[saleRecord](dir, CollectionVentas)
		if err != nil {
			return err
		}
		list = make([]*entity.Sale, 0, len(recs))
		for _, rec := range recs {
			if match(rec) {
				list = append(list, rec.toEntity())
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return list, nil
}
