// Package authz centraliza el chequeo de capacidades {rol, acción} en una sola
// tabla, en lugar de condicionales de rol repartidos por los handlers.
package authz

import "github.com/tu-usuario/pos-inventario/internal/domain/entity"

// Action una operación protegida de la API.
type Action string

const (
	ProductRead  Action = "product:read"
	ProductWrite Action = "product:write"
	StockDeduct  Action = "stock:deduct"
	SaleCreate   Action = "sale:create"
	ReportRead   Action = "report:read"
	UserManage   Action = "user:manage"
)

// policy tabla rol → acciones permitidas. Admin es superconjunto de staff.
var policy = map[string]map[Action]bool{
	entity.RoleAdmin: {
		ProductRead:  true,
		ProductWrite: true,
		StockDeduct:  true,
		SaleCreate:   true,
		ReportRead:   true,
		UserManage:   true,
	},
	entity.RoleStaff: {
		ProductRead:  true,
		ProductWrite: true,
		StockDeduct:  true,
		SaleCreate:   true,
		ReportRead:   true,
	},
	entity.RoleSupplier: {
		ProductRead: true,
	},
}

// Can decide si el rol puede ejecutar la acción. Roles desconocidos no pueden nada.
func Can(role string, action Action) bool {
	perms, ok := policy[role]
	if !ok {
		return false
	}
	return perms[action]
}
