// Package reports genera los resúmenes de ventas diarios y semanales.
// Solo lectura: agrega sobre el log append-only de ventas.
package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// Periodos soportados. Cualquier otro valor cae a "daily" (default permisivo,
// documentado en los tests).
const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
)

const (
	dailyWindow  = 30 * 24 * time.Hour  // últimos 30 días
	weeklyWindow = 12 * 7 * 24 * time.Hour // últimas 12 semanas
)

// ReportUseCase agrega ventas por ventana de tiempo.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// GetSalesReport devuelve las ventanas agregadas para el periodo pedido.
// Sin efectos de escritura.
func (uc *ReportUseCase) GetSalesReport(ctx context.Context, period string) ([]dto.ReportEntryDTO, error) {
	granularity := "day"
	window := dailyWindow
	normalized := PeriodDaily
	if period == PeriodWeekly {
		granularity = "week"
		window = weeklyWindow
		normalized = PeriodWeekly
	}

	rows, err := uc.repo.AggregateSales(ctx, granularity, time.Now().Add(-window))
	if err != nil {
		return nil, err
	}

	entries := make([]dto.ReportEntryDTO, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.ReportEntryDTO{
			Period:    normalized,
			Bucket:    row.Bucket,
			SaleCount: row.SaleCount,
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue,
		})
	}
	return entries, nil
}
