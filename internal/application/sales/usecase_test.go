package sales_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/sales"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product // por ID
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) snapshot() map[string]*entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*entity.Product, len(r.products))
	for id, p := range r.products {
		cp := *p
		out[id] = &cp
	}
	return out
}

func (r *fakeProductRepo) restore(snap map[string]*entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = snap
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	// Igual que el driver real: un valor que no es UUID no se puede ligar a la
	// columna id, el error llega antes que cualquier "no hay fila".
	if uuid.Validate(id) != nil {
		return nil, fmt.Errorf("unable to encode %q into binary format for uuid", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByCodeForUpdate(code string) (*entity.Product, error) {
	return r.GetByCode(code)
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

// DecrementStock imita el UPDATE condicional: solo muta si quantity >= qty.
func (r *fakeProductRepo) DecrementStock(id string, qty int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Quantity < qty {
		return nil, nil
	}
	p.Quantity -= qty
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales []*entity.Sale
	items []*entity.SaleItem
}

func (r *fakeSaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, sale)
	r.items = append(r.items, items...)
	return nil
}

// fakeTxRunner emula el Begin/Rollback real: toma un snapshot del repo antes de
// ejecutar el callback y lo restaura si este devuelve error, de modo que los
// tests observen la misma semántica todo-o-nada que la transacción de verdad.
type fakeTxRunner struct {
	products *fakeProductRepo
	sales    *fakeSaleRepo
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	snapProducts := tx.products.snapshot()
	snapSales := len(tx.sales.sales)
	snapItems := len(tx.sales.items)

	if err := fn(tx.products, tx.sales); err != nil {
		tx.products.restore(snapProducts)
		tx.sales.sales = tx.sales.sales[:snapSales]
		tx.sales.items = tx.sales.items[:snapItems]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newProduct(code, name, price string, qty int64) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTestSaleUseCase(products ...*entity.Product) (*sales.SaleUseCase, *fakeProductRepo, *fakeSaleRepo) {
	productRepo := newFakeProductRepo(products...)
	saleRepo := &fakeSaleRepo{}
	tx := &fakeTxRunner{products: productRepo, sales: saleRepo}
	return sales.NewSaleUseCase(tx, productRepo), productRepo, saleRepo
}

func mustQuantity(t *testing.T, repo *fakeProductRepo, code string) int64 {
	t.Helper()
	p, err := repo.GetByCode(code)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// DeductStock
// ──────────────────────────────────────────────────────────────────────────────

func TestDeductStock_PorCodigoManual(t *testing.T) {
	uc, repo, _ := newTestSaleUseCase(newProduct("P001", "Café molido", "5.00", 10))

	out, err := uc.DeductStock(context.Background(), "P001", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Quantity)
	assert.Equal(t, int64(7), mustQuantity(t, repo, "P001"))
}

func TestDeductStock_FallbackPorID(t *testing.T) {
	p := newProduct("P001", "Café molido", "5.00", 10)
	uc, _, _ := newTestSaleUseCase(p)

	out, err := uc.DeductStock(context.Background(), p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), out.Quantity)
}

func TestDeductStock_Insuficiente_NoMuta(t *testing.T) {
	uc, repo, _ := newTestSaleUseCase(newProduct("P001", "Café molido", "5.00", 2))

	_, err := uc.DeductStock(context.Background(), "P001", 5)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "P001", stockErr.ProductCode)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(5), stockErr.Requested)
	assert.Equal(t, int64(2), mustQuantity(t, repo, "P001"), "un rechazo no debe tocar el stock")
}

func TestDeductStock_StockExacto_QuedaEnCero(t *testing.T) {
	uc, repo, _ := newTestSaleUseCase(newProduct("P001", "Café molido", "5.00", 5))

	out, err := uc.DeductStock(context.Background(), "P001", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Quantity)
	assert.Equal(t, int64(0), mustQuantity(t, repo, "P001"))
}

func TestDeductStock_ProductoInexistente(t *testing.T) {
	uc, _, _ := newTestSaleUseCase()

	_, err := uc.DeductStock(context.Background(), "NO-EXISTE", 1)

	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "NO-EXISTE", notFound.Ref)
}

func TestDeductStock_UUIDValidoInexistente_NotFound(t *testing.T) {
	// Una referencia con forma de UUID pero sin fila sí llega al fallback por
	// ID y aun así debe terminar en not-found, no en error interno.
	uc, _, _ := newTestSaleUseCase()
	ref := uuid.New().String()

	_, err := uc.DeductStock(context.Background(), ref, 1)

	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, ref, notFound.Ref)
}

func TestDeductStock_CantidadInvalida(t *testing.T) {
	uc, _, _ := newTestSaleUseCase(newProduct("P001", "Café molido", "5.00", 10))

	_, err := uc.DeductStock(context.Background(), "P001", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.DeductStock(context.Background(), "P001", -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.DeductStock(context.Background(), "", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_UnItem_TotalYStock(t *testing.T) {
	uc, repo, saleRepo := newTestSaleUseCase(newProduct("P001", "Café molido", "5.00", 10))

	out, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ID: "P001", Quantity: 3}},
	})
	require.NoError(t, err)

	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("15.00")),
		"total esperado 15.00, obtuvo %s", out.TotalAmount)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "P001", out.Records[0].ProductCode)
	assert.Equal(t, int64(3), out.Records[0].Quantity)
	assert.Equal(t, int64(7), mustQuantity(t, repo, "P001"))

	require.Len(t, saleRepo.sales, 1)
	assert.Equal(t, "user-1", saleRepo.sales[0].CreatedBy)
	require.Len(t, saleRepo.items, 1)
	assert.True(t, saleRepo.items[0].LineTotal.Equal(decimal.RequireFromString("15.00")))
}

func TestCreateSale_MultiItem_DeduceTodos(t *testing.T) {
	uc, repo, _ := newTestSaleUseCase(
		newProduct("P001", "Café molido", "5.00", 10),
		newProduct("P002", "Azúcar", "2.50", 20),
	)

	out, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ID: "P001", Quantity: 2},
			{ID: "P002", Quantity: 4},
		},
	})
	require.NoError(t, err)

	// 2*5.00 + 4*2.50 = 20.00
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, int64(8), mustQuantity(t, repo, "P001"))
	assert.Equal(t, int64(16), mustQuantity(t, repo, "P002"))
}

func TestCreateSale_UnItemInsuficiente_NoDeduceNada(t *testing.T) {
	uc, repo, saleRepo := newTestSaleUseCase(
		newProduct("P001", "Café molido", "5.00", 10),
		newProduct("P002", "Azúcar", "2.50", 1),
	)

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ID: "P001", Quantity: 2}, // alcanza
			{ID: "P002", Quantity: 5}, // no alcanza
		},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "P002", stockErr.ProductCode)

	// Todo-o-nada: la línea válida tampoco se deduce.
	assert.Equal(t, int64(10), mustQuantity(t, repo, "P001"))
	assert.Equal(t, int64(1), mustQuantity(t, repo, "P002"))
	assert.Empty(t, saleRepo.sales, "una venta rechazada no debe persistirse")
}

func TestCreateSale_ProductoInexistente_NoDeduceNada(t *testing.T) {
	uc, repo, _ := newTestSaleUseCase(newProduct("P001", "Café molido", "5.00", 10))

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ID: "P001", Quantity: 2},
			{ID: "FANTASMA", Quantity: 1},
		},
	})

	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "FANTASMA", notFound.Ref)
	assert.Equal(t, int64(10), mustQuantity(t, repo, "P001"))
}

func TestCreateSale_LineasDuplicadasExcedenStock_Rechaza(t *testing.T) {
	// Dos líneas del mismo producto que individualmente caben pero cuya suma no:
	// la fase de validación las acepta una a una, el UPDATE condicional de la
	// segunda falla y la transacción deshace la primera.
	uc, repo, saleRepo := newTestSaleUseCase(newProduct("P001", "Café molido", "5.00", 5))

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ID: "P001", Quantity: 3},
			{ID: "P001", Quantity: 3},
		},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(5), mustQuantity(t, repo, "P001"), "el rollback debe deshacer la primera deducción")
	assert.Empty(t, saleRepo.sales)
}

func TestCreateSale_SinItems_Validacion(t *testing.T) {
	uc, _, _ := newTestSaleUseCase()

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_CantidadInvalida_Validacion(t *testing.T) {
	uc, repo, _ := newTestSaleUseCase(newProduct("P001", "Café molido", "5.00", 10))

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ID: "P001", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ID: "", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, int64(10), mustQuantity(t, repo, "P001"))
}

func TestCreateSale_StockNuncaNegativo(t *testing.T) {
	uc, repo, _ := newTestSaleUseCase(newProduct("P001", "Café molido", "5.00", 3))

	// Vender de a uno hasta agotar; los intentos posteriores deben fallar.
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := uc.CreateSale(ctx, "user-1", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ID: "P001", Quantity: 1}},
		})
		require.NoError(t, err)
	}

	_, err := uc.CreateSale(ctx, "user-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ID: "P001", Quantity: 1}},
	})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(0), mustQuantity(t, repo, "P001"), "el stock jamás puede quedar negativo")
}

func TestCreateSale_ErrorDelStorage_SePropaga(t *testing.T) {
	productRepo := newFakeProductRepo(newProduct("P001", "Café molido", "5.00", 10))
	saleRepo := &fakeSaleRepo{}
	boom := errors.New("conexión perdida")
	uc := sales.NewSaleUseCase(&failingTxRunner{err: boom}, productRepo)

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ID: "P001", Quantity: 1}},
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, saleRepo.sales)
}

type failingTxRunner struct{ err error }

func (tx *failingTxRunner) Run(context.Context, func(repository.ProductRepository, repository.SaleRepository) error) error {
	return tx.err
}
