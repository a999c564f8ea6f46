package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta.
// Solo el dueño de la venta puede descargarlo.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:    saleRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// DownloadReceipt devuelve (pdfBytes, filename).
//
// Retorna:
//   - domain.ErrNotFound   si la venta no existe.
//   - domain.ErrForbidden  si la venta es de otra cuenta.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, requesterID, saleID int) ([]byte, string, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if sale.UserID != requesterID {
		return nil, "", domain.ErrForbidden
	}

	buyer := ReceiptBuyer{ID: sale.UserID, Nombre: fmt.Sprintf("Cliente #%d", sale.UserID)}
	user, err := uc.userRepo.GetByID(sale.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener usuario: %w", err)
	}
	if user != nil {
		buyer.Nombre = strings.TrimSpace(user.Nombre + " " + user.Apellido)
		buyer.Email = user.Email
	}

	lines := make([]ReceiptLine, 0, len(sale.Items))
	for _, it := range sale.Items {
		name := fmt.Sprintf("Producto #%d", it.ProductID)
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("comprobante: obtener producto %d: %w", it.ProductID, err)
		}
		if product != nil {
			name = product.Nombre
		}
		lines = append(lines, ReceiptLine{
			ProductID:      it.ProductID,
			Nombre:         name,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal(),
		})
	}

	pdf, err := uc.generator.GenerateSaleReceipt(ctx, sale, buyer, lines)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("comprobante-venta-%d.pdf", sale.ID), nil
}
