// Package sales implementa la transacción de venta multi-ítem y la deducción
// puntual de stock. Contrato central: la cantidad de un producto nunca queda
// negativa y una venta fallida no deja deducciones parciales.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// SaleUseCase caso de uso de ventas: CreateSale (multi-ítem, transaccional) y
// DeductStock (deducción puntual con UPDATE condicional).
type SaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, productRepo: productRepo}
}

// DeductStock resta qty unidades de un producto (referencia: código manual con
// fallback a ID interno). La deducción es un UPDATE condicional en el storage
// (quantity >= qty), nunca read-then-write en la aplicación, así dos requests
// concurrentes no pueden dejar el stock negativo.
func (uc *SaleUseCase) DeductStock(ctx context.Context, ref string, qty int64) (*dto.ProductResponse, error) {
	if ref == "" || qty <= 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.resolveProduct(uc.productRepo, ref, false)
	if err != nil {
		return nil, err
	}

	updated, err := uc.productRepo.DecrementStock(product.ID, qty)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// La condición quantity >= qty no se cumplió: releer para reportar lo disponible.
		current, err := uc.productRepo.GetByID(product.ID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, &domain.ProductNotFoundError{Ref: ref}
		}
		return nil, &domain.InsufficientStockError{
			ProductCode: current.Code,
			Available:   current.Quantity,
			Requested:   qty,
		}
	}
	return toProductResponse(updated), nil
}

// CreateSale registra una venta multi-ítem: valida la existencia y el stock de
// todos los productos antes de deducir nada (check-all-then-commit-all) dentro
// de una transacción con bloqueo de fila. Si cualquier línea falla, la venta
// completa se rechaza y no se observa deducción parcial.
func (uc *SaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	out := &dto.SaleResponse{CreatedAt: now}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Fase 1: resolver y validar todas las líneas con la fila bloqueada
		// (SELECT FOR UPDATE). Ningún stock se muta todavía.
		products := make([]*entity.Product, len(in.Items))
		for i, item := range in.Items {
			product, err := uc.resolveProduct(productRepo, item.ID, true)
			if err != nil {
				return err
			}
			if item.Quantity > product.Quantity {
				return &domain.InsufficientStockError{
					ProductCode: product.Code,
					Available:   product.Quantity,
					Requested:   item.Quantity,
				}
			}
			products[i] = product
		}

		// Fase 2: deducir cada línea. El UPDATE condicional cubre el caso de
		// líneas duplicadas del mismo producto cuya suma excede el stock; si
		// falla, el Rollback del TxRunner deshace las deducciones previas.
		sale := &entity.Sale{
			ID:        uuid.New().String(),
			CreatedBy: userID,
			CreatedAt: now,
		}
		total := decimal.Zero
		items := make([]*entity.SaleItem, 0, len(in.Items))
		records := make([]dto.SaleRecordDTO, 0, len(in.Items))

		for i, item := range in.Items {
			product := products[i]
			updated, err := productRepo.DecrementStock(product.ID, item.Quantity)
			if err != nil {
				return err
			}
			if updated == nil {
				return &domain.InsufficientStockError{
					ProductCode: product.Code,
					Available:   product.Quantity,
					Requested:   item.Quantity,
				}
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(item.Quantity))
			total = total.Add(lineTotal)

			items = append(items, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   product.ID,
				ProductCode: product.Code,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.Price,
				LineTotal:   lineTotal,
			})
			records = append(records, dto.SaleRecordDTO{
				ProductID:   product.ID,
				ProductCode: product.Code,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.Price,
				LineTotal:   lineTotal,
			})
		}

		sale.Total = total
		if err := saleRepo.Create(sale, items); err != nil {
			return err
		}

		out.SaleID = sale.ID
		out.TotalAmount = total
		out.Records = records
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveProduct busca por código manual y cae al ID interno si no hay match.
// forUpdate usa las variantes con bloqueo de fila (solo dentro de una tx).
func (uc *SaleUseCase) resolveProduct(repo repository.ProductRepository, ref string, forUpdate bool) (*entity.Product, error) {
	var (
		product *entity.Product
		err     error
	)
	if forUpdate {
		product, err = repo.GetByCodeForUpdate(ref)
	} else {
		product, err = repo.GetByCode(ref)
	}
	if err != nil {
		return nil, err
	}
	// El ID interno es un UUID: una referencia que no parsea como tal no puede
	// tener fila, y pasarla al driver falla el encode contra la columna uuid.
	if product == nil && uuid.Validate(ref) == nil {
		if forUpdate {
			product, err = repo.GetByIDForUpdate(ref)
		} else {
			product, err = repo.GetByID(ref)
		}
		if err != nil {
			return nil, err
		}
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{Ref: ref}
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
