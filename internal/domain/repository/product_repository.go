package repository

import "github.com/tu-usuario/pos-inventario/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// Las búsquedas devuelven (nil, nil) cuando no hay fila, no error.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetByCodeForUpdate bloquea la fila (SELECT FOR UPDATE); usar solo dentro
	// de una transacción del TxRunner.
	GetByCodeForUpdate(code string) (*entity.Product, error)
	GetByIDForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// DecrementStock resta qty solo si quantity >= qty (UPDATE condicional) y
	// devuelve el producto actualizado. Devuelve (nil, nil) si la condición no
	// se cumplió o la fila no existe; el caller distingue ambos casos.
	DecrementStock(id string, qty int64) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
