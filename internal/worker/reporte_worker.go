package worker

// reporte_worker.go
// Processes shift-close report jobs from QueueReportes: renders the one-page
// PDF for the closed shift and mails it to the administrator. The job is best
// effort; a failed send is logged, the closed shift itself is untouched.

import (
	"context"
	"encoding/json"
	"fmt"

	"hostalpos/internal/config"
	"hostalpos/internal/infra"
	"hostalpos/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReporteWorker turns a closed shift into a mailed PDF report.
type ReporteWorker struct {
	reportes service.ReporteService
	mailer   *infra.Mailer
	cfg      *config.Config
}

func NewReporteWorker(reportes service.ReporteService, mailer *infra.Mailer, cfg *config.Config) *ReporteWorker {
	return &ReporteWorker{reportes: reportes, mailer: mailer, cfg: cfg}
}

// Process handles a single shift report job:
//  1. Parse ReporteJobPayload from the job envelope
//  2. Re-derive the shift row from the ledger
//  3. Render the PDF to the configured storage path
//  4. Mail it to the administrator (skipped when ADMIN_EMAIL is unset)
func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return
	}

	turnoID, err := uuid.Parse(payload.TurnoID)
	if err != nil {
		log.Error().Str("turno_id", payload.TurnoID).Msg("reporte_worker: invalid turno_id")
		return
	}

	fila, err := w.reportes.ReporteTurno(ctx, turnoID)
	if err != nil {
		log.Error().Err(err).Str("turno_id", payload.TurnoID).Msg("reporte_worker: shift lookup failed")
		return
	}

	pdfPath, err := infra.GenerateReporteTurnoPDF(fila, w.cfg.NombreNegocio, w.cfg.PDFStoragePath)
	if err != nil {
		log.Error().Err(err).Str("turno_id", payload.TurnoID).Msg("reporte_worker: pdf generation failed")
		return
	}
	log.Info().Str("turno_id", payload.TurnoID).Str("pdf", pdfPath).Msg("shift report generated")

	if w.cfg.AdminEmail == "" {
		return
	}
	subject := fmt.Sprintf("%s: cierre de turno %s (%s)", w.cfg.NombreNegocio, fila.TipoTurno, fila.Empleado)
	body := fmt.Sprintf(
		"Turno cerrado por %s.\nTotal ingresos: $%s\nEfectivo: $%s\nTransferencia: $%s\n",
		fila.Empleado,
		fila.TotalIngresos.StringFixed(2),
		fila.TotalEfectivo.StringFixed(2),
		fila.TotalTransferencia.StringFixed(2),
	)
	if err := w.mailer.SendReporte(w.cfg.AdminEmail, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("turno_id", payload.TurnoID).Msg("reporte_worker: email send failed")
		return
	}
	log.Info().Str("turno_id", payload.TurnoID).Str("to", w.cfg.AdminEmail).Msg("shift report mailed")
}
