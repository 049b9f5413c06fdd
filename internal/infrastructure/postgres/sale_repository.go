package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)
var _ repository.ReportRepository = (*SaleRepo)(nil)

// SaleRepo persistencia del log append-only de ventas y consultas de reporte
// (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y todas las líneas de la venta. Se invoca dentro
// de la transacción del TxRunner, junto con las deducciones de stock.
func (r *SaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, total, created_by, created_at)
		VALUES ($1, $2, $3, $4)`,
		sale.ID, sale.Total, sale.CreatedBy, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, product_code, product_name,
				quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.SaleID, item.ProductID, item.ProductCode, item.ProductName,
			item.Quantity, item.UnitPrice, item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// AggregateSales agrupa las líneas de venta por ventana de tiempo (date_trunc
// 'day' o 'week'). Solo lectura.
func (r *SaleRepo) AggregateSales(ctx context.Context, granularity string, since time.Time) ([]repository.ReportRow, error) {
	// granularity viene del use case, nunca del cliente; aún así se restringe.
	if granularity != "day" && granularity != "week" {
		granularity = "day"
	}
	query := fmt.Sprintf(`
		SELECT
			date_trunc('%s', s.created_at)  AS bucket,
			COUNT(DISTINCT s.id)            AS sale_count,
			COALESCE(SUM(i.quantity), 0)    AS units_sold,
			COALESCE(SUM(i.line_total), 0)  AS revenue
		FROM sales s
		JOIN sale_items i ON i.sale_id = s.id
		WHERE s.created_at >= $1
		GROUP BY bucket
		ORDER BY bucket DESC`, granularity)

	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("aggregate sales: %w", err)
	}
	defer rows.Close()

	var results []repository.ReportRow
	for rows.Next() {
		var row repository.ReportRow
		if err := rows.Scan(&row.Bucket, &row.SaleCount, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
