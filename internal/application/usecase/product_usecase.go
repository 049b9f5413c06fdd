package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo se muta vía
// deducción/venta (paquete sales), nunca por Update.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. Devuelve ErrDuplicate si el código ya existe.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" || in.Price.LessThan(decimal.Zero) || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get busca por código manual con fallback al ID interno.
func (uc *ProductUseCase) Get(ref string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ref)
	if err != nil {
		return nil, err
	}
	// Solo cae al ID interno si la referencia es un UUID válido; un código
	// manual inexistente no debe llegar al driver como valor de la columna uuid.
	if product == nil && uuid.Validate(ref) == nil {
		product, err = uc.repo.GetByID(ref)
		if err != nil {
			return nil, err
		}
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{Ref: ref}
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update actualiza nombre y precio. La cantidad no se toca aquí.
func (uc *ProductUseCase) Update(ref string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.Get(ref)
	if err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:        current.ID,
		Code:      current.Code,
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  current.Quantity,
		CreatedAt: current.CreatedAt,
		UpdatedAt: time.Now(),
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por código o ID.
func (uc *ProductUseCase) Delete(ref string) error {
	current, err := uc.Get(ref)
	if err != nil {
		return err
	}
	return uc.repo.Delete(current.ID)
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
