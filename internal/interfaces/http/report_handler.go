package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/reports"
)

// ReportPDFGenerator renderiza el reporte agregado como PDF.
type ReportPDFGenerator interface {
	GenerateSalesReportPDF(period string, entries []dto.ReportEntryDTO) ([]byte, error)
}

// ReportHandler expone el reporte de ventas en JSON y PDF.
type ReportHandler struct {
	uc  *reports.ReportUseCase
	pdf ReportPDFGenerator
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reports.ReportUseCase, pdf ReportPDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// normalizePeriod: cualquier valor distinto de "weekly" cae a "daily"
// (default permisivo del contrato de reportes).
func normalizePeriod(period string) string {
	if period == reports.PeriodWeekly {
		return reports.PeriodWeekly
	}
	return reports.PeriodDaily
}

// Get godoc
// @Summary      Reporte agregado de ventas (daily | weekly)
// @Tags         reports
// @Produce      json
// @Param        period  path  string  true  "daily o weekly (otros valores caen a daily)"
// @Success      200  {array}  dto.ReportEntryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/{period} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	entries, err := h.uc.GetSalesReport(c.UserContext(), normalizePeriod(c.Params("period")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// GetPDF godoc
// @Summary      Reporte de ventas como PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        period  path  string  true  "daily o weekly"
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/{period}/pdf [get]
func (h *ReportHandler) GetPDF(c *fiber.Ctx) error {
	period := normalizePeriod(c.Params("period"))
	entries, err := h.uc.GetSalesReport(c.UserContext(), period)
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.pdf.GenerateSalesReportPDF(period, entries)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ventas-`+period+`.pdf"`)
	return c.Send(data)
}
