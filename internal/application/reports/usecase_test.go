package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/reports"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// fakeReportRepo captura los argumentos de la agregación y devuelve filas fijas.
type fakeReportRepo struct {
	granularity string
	since       time.Time
	rows        []repository.ReportRow
	err         error
}

func (r *fakeReportRepo) AggregateSales(_ context.Context, granularity string, since time.Time) ([]repository.ReportRow, error) {
	r.granularity = granularity
	r.since = since
	return r.rows, r.err
}

func TestGetSalesReport_Daily(t *testing.T) {
	bucket := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{rows: []repository.ReportRow{
		{Bucket: bucket, SaleCount: 4, UnitsSold: 11, Revenue: decimal.RequireFromString("57.50")},
	}}
	uc := reports.NewReportUseCase(repo)

	entries, err := uc.GetSalesReport(context.Background(), reports.PeriodDaily)
	require.NoError(t, err)

	assert.Equal(t, "day", repo.granularity)
	require.Len(t, entries, 1)
	assert.Equal(t, reports.PeriodDaily, entries[0].Period)
	assert.Equal(t, bucket, entries[0].Bucket)
	assert.Equal(t, int64(4), entries[0].SaleCount)
	assert.Equal(t, int64(11), entries[0].UnitsSold)
	assert.True(t, entries[0].Revenue.Equal(decimal.RequireFromString("57.50")))
}

func TestGetSalesReport_Weekly(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := reports.NewReportUseCase(repo)

	_, err := uc.GetSalesReport(context.Background(), reports.PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, "week", repo.granularity)

	// Ventana semanal: las últimas 12 semanas.
	expected := time.Now().Add(-12 * 7 * 24 * time.Hour)
	assert.WithinDuration(t, expected, repo.since, time.Minute)
}

func TestGetSalesReport_PeriodoDesconocido_CaeADaily(t *testing.T) {
	// Default permisivo: cualquier periodo que no sea "weekly" agrega por día.
	repo := &fakeReportRepo{}
	uc := reports.NewReportUseCase(repo)

	for _, period := range []string{"monthly", "", "WEEKLY", "dia"} {
		_, err := uc.GetSalesReport(context.Background(), period)
		require.NoError(t, err)
		assert.Equal(t, "day", repo.granularity, "periodo %q debe caer a daily", period)
	}
}

func TestGetSalesReport_SinVentas_ListaVacia(t *testing.T) {
	uc := reports.NewReportUseCase(&fakeReportRepo{})

	entries, err := uc.GetSalesReport(context.Background(), reports.PeriodDaily)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
