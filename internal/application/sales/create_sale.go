package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Config política de ventas.
type Config struct {
	// PagadoDefault valor de "pagado" cuando el pedido no lo trae.
	PagadoDefault bool
	// AllowClientPrice acepta precio_unitario del cliente. Apagado, el precio sale siempre del catálogo.
	AllowClientPrice bool
}

// CreateSaleUseCase valida y registra ventas en el ledger.
type CreateSaleUseCase struct {
	txRunner usecase.TxRunner
	saleRepo repository.SaleRepository
	cfg      Config
	now      func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner usecase.TxRunner, saleRepo repository.SaleRepository, cfg Config) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner: txRunner,
		saleRepo: saleRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj usado para "fecha".
func (uc *CreateSaleUseCase) WithClock(now func() time.Time) *CreateSaleUseCase {
	uc.now = now
	return uc
}

// CreateSale registra una venta a nombre de userID (la identidad verificada del token).
// Todo o nada: si un producto no existe no se escribe nada.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID int, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: usuario requerido", domain.ErrInvalidInput)
	}
	if len(in.Productos) == 0 {
		return nil, fmt.Errorf("%w: la venta debe incluir al menos un producto", domain.ErrInvalidInput)
	}
	for _, item := range in.Productos {
		if item.ProductID <= 0 {
			return nil, fmt.Errorf("%w: id_producto inválido: %d", domain.ErrInvalidInput, item.ProductID)
		}
		if item.Cantidad <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida para el producto %d", domain.ErrInvalidInput, item.ProductID)
		}
		if uc.cfg.AllowClientPrice && item.PrecioUnitario != nil && item.PrecioUnitario.IsNegative() {
			return nil, fmt.Errorf("%w: precio_unitario negativo para el producto %d", domain.ErrInvalidInput, item.ProductID)
		}
	}

	pagado := uc.cfg.PagadoDefault
	if in.Pagado != nil {
		pagado = *in.Pagado
	}

	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		userRepo repository.UserRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Cuenta que actúa
		user, err := userRepo.GetByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if !user.Activo {
			return fmt.Errorf("%w: cuenta inactiva", domain.ErrForbidden)
		}

		// 2) Productos y precio congelado de cada línea
		catalog := usecase.NewProductUseCase(productRepo)
		items := make([]entity.LineItem, 0, len(in.Productos))
		for _, req := range in.Productos {
			price, err := catalog.PriceOf(req.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrProductNotFound) {
					return fmt.Errorf("%w: el producto %d no existe", domain.ErrInvalidInput, req.ProductID)
				}
				return err
			}
			if uc.cfg.AllowClientPrice && req.PrecioUnitario != nil {
				price = *req.PrecioUnitario
			}
			if price.IsNegative() {
				return fmt.Errorf("%w: el producto %d tiene precio negativo en el catálogo", domain.ErrInvalidInput, req.ProductID)
			}
			items = append(items, entity.LineItem{
				ProductID:      req.ProductID,
				Cantidad:       req.Cantidad,
				PrecioUnitario: price,
			})
		}

		// 3) Total recalculado; el del cliente se ignora
		sale = &entity.Sale{
			UserID:    user.ID,
			Fecha:     uc.now().UTC(),
			Direccion: strings.TrimSpace(in.Direccion),
			Pagado:    pagado,
			Items:     items,
			Total:     entity.SumItems(items),
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// List devuelve el ledger; userID > 0 filtra por usuario.
func (uc *CreateSaleUseCase) List(userID int) ([]dto.SaleResponse, error) {
	var (
		list []*entity.Sale
		err  error
	)
	if userID > 0 {
		list, err = uc.saleRepo.ListByUser(userID)
	} else {
		list, err = uc.saleRepo.List()
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

// GetSale obtiene una venta por ID. ErrNotFound si no existe.
func (uc *CreateSaleUseCase) GetSale(id int) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Fecha:     s.Fecha,
		Total:     s.Total,
		Direccion: s.Direccion,
		Pagado:    s.Pagado,
		Productos: make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		resp.Productos = append(resp.Productos, dto.SaleItemResponse{
			ProductID:      it.ProductID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		})
	}
	return resp
}
