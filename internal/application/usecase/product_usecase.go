package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CategoriaTodas es el valor del filtro que devuelve todo el catálogo.
const CategoriaTodas = "todas"

// ProductUseCase vista de solo lectura sobre el catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso. Dentro de una transacción se construye
// con el repositorio atado a la Tx.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List lista el catálogo; categoria vacía o "todas" no filtra.
func (uc *ProductUseCase) List(categoria string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	categoria = strings.TrimSpace(categoria)
	all := categoria == "" || strings.EqualFold(categoria, CategoriaTodas)
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if !all && !strings.EqualFold(p.Categoria, categoria) {
			continue
		}
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id int) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Exists indica si el producto está en el catálogo.
func (uc *ProductUseCase) Exists(id int) (bool, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	return product != nil, nil
}

// PriceOf devuelve el precio vigente. ErrProductNotFound si no existe.
func (uc *ProductUseCase) PriceOf(id int) (decimal.Decimal, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
	}
	return product.Precio, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Desc:      p.Desc,
		Precio:    p.Precio,
		Categoria: p.Categoria,
		Activo:    p.Activo,
		Imagen:    p.Imagen,
	}
}
