package infra

// pdf.go generates the one-page A5 shift-close report with go-pdf/fpdf:
// employee and shift header, income totals by payment method, and the cash
// reconciliation block (expected vs reported, difference).
//
// The output file is saved to storagePath/reporte_turno_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"hostalpos/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReporteTurnoPDF renders the shift report for a (usually closed)
// shift. storagePath is created if needed. Returns the absolute path of the
// generated file.
func GenerateReporteTurnoPDF(fila *dto.ReporteTurnoRow, nombreNegocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_turno_%s.pdf", fila.TurnoID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, nombreNegocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Reporte de cierre de turno", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Shift info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	labelW := contentW * 0.45
	valueW := contentW * 0.55

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
	}

	row("Empleado:", fila.Empleado)
	row("Turno:", fila.TipoTurno)
	row("Inicio:", fila.FechaInicio)
	if fila.FechaFin != nil {
		row("Cierre:", *fila.FechaFin)
	}
	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Income totals ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Ingresos del turno", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	row("Efectivo:", "$"+fila.TotalEfectivo.StringFixed(2))
	row("Transferencia:", "$"+fila.TotalTransferencia.StringFixed(2))
	pdf.SetFont("Helvetica", "B", 10)
	row("Total ingresos:", "$"+fila.TotalIngresos.StringFixed(2))
	if fila.SinIngresos {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(contentW, 5, "Turno sin ingresos registrados", "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Cash reconciliation ───────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Arqueo de caja", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	row("Caja inicial:", "$"+fila.CajaInicial.StringFixed(2))
	if fila.Sueldo != nil {
		row("Sueldo retirado:", "$"+fila.Sueldo.StringFixed(2))
	}
	if fila.EfectivoEsperado != nil {
		row("Efectivo esperado:", "$"+fila.EfectivoEsperado.StringFixed(2))
	}
	if fila.EfectivoReportado != nil {
		row("Efectivo contado:", "$"+fila.EfectivoReportado.StringFixed(2))
	}
	if fila.Diferencia != nil {
		pdf.SetFont("Helvetica", "B", 10)
		row("Diferencia:", signedMonto(*fila.Diferencia))
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func signedMonto(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
