package handler

import (
	"encoding/csv"
	"net/http"
	"time"

	"hostalpos/internal/apierror"
	"hostalpos/internal/config"
	"hostalpos/internal/infra"
	"hostalpos/internal/middleware"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct {
	svc service.ReporteService
	cfg *config.Config
}

func NewReportesHandler(svc service.ReporteService, cfg *config.Config) *ReportesHandler {
	return &ReportesHandler{svc: svc, cfg: cfg}
}

// rangoFechas parses the optional desde / hasta query parameters.
func rangoFechas(c *gin.Context) (desde, hasta *time.Time, ok bool) {
	if v := c.Query("desde"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde invalido, se espera RFC3339"))
			return nil, nil, false
		}
		desde = &t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hasta invalido, se espera RFC3339"))
			return nil, nil, false
		}
		hasta = &t
	}
	return desde, hasta, true
}

// Turnos godoc
// @Summary Reporte por turno con totales derivados del libro de caja
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "RFC3339"
// @Param hasta query string false "RFC3339"
// @Success 200 {array} dto.ReporteTurnoRow
// @Failure 403 {object} apierror.APIError
// @Router /v1/reportes/turnos [get]
func (h *ReportesHandler) Turnos(c *gin.Context) {
	desde, hasta, ok := rangoFechas(c)
	if !ok {
		return
	}
	resp, err := h.svc.ReporteTurnos(c.Request.Context(), middleware.GetCaller(c), desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TurnosCSV streams the same per-shift report as a CSV download.
func (h *ReportesHandler) TurnosCSV(c *gin.Context) {
	desde, hasta, ok := rangoFechas(c)
	if !ok {
		return
	}
	filas, err := h.svc.ReporteTurnos(c.Request.Context(), middleware.GetCaller(c), desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="reporte_turnos.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"turno_id", "empleado", "tipo_turno", "fecha_inicio", "fecha_fin",
		"caja_inicial", "total_efectivo", "total_transferencia", "total_ingresos",
		"sueldo", "efectivo_esperado", "efectivo_reportado", "diferencia", "sin_ingresos",
	})
	for _, f := range filas {
		fin := ""
		if f.FechaFin != nil {
			fin = *f.FechaFin
		}
		sinIngresos := "no"
		if f.SinIngresos {
			sinIngresos = "si"
		}
		_ = w.Write([]string{
			f.TurnoID, f.Empleado, f.TipoTurno, f.FechaInicio, fin,
			f.CajaInicial.StringFixed(2),
			f.TotalEfectivo.StringFixed(2),
			f.TotalTransferencia.StringFixed(2),
			f.TotalIngresos.StringFixed(2),
			decimalOrEmpty(f.Sueldo),
			decimalOrEmpty(f.EfectivoEsperado),
			decimalOrEmpty(f.EfectivoReportado),
			decimalOrEmpty(f.Diferencia),
			sinIngresos,
		})
	}
	w.Flush()
}

// TurnoPDF generates the one-page shift report and returns it as a download.
func (h *ReportesHandler) TurnoPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	fila, err := h.svc.ReporteTurno(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := infra.GenerateReporteTurnoPDF(fila, h.cfg.NombreNegocio, h.cfg.PDFStoragePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "reporte_turno_"+fila.TurnoID+".pdf")
}

// Empleados godoc
// @Summary Reporte agregado por empleado (solo ADMIN)
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ReporteEmpleadoRow
// @Failure 403 {object} apierror.APIError
// @Router /v1/reportes/empleados [get]
func (h *ReportesHandler) Empleados(c *gin.Context) {
	resp, err := h.svc.ReportePorEmpleado(c.Request.Context(), middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumenDiario godoc
// @Summary Resumen de todos los turnos iniciados en una fecha (solo ADMIN)
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "YYYY-MM-DD, hoy por defecto"
// @Success 200 {object} dto.ResumenDiarioResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/reportes/resumen-diario [get]
func (h *ReportesHandler) ResumenDiario(c *gin.Context) {
	var fecha *time.Time
	if v := c.Query("fecha"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha invalida, se espera YYYY-MM-DD"))
			return
		}
		fecha = &t
	}
	resp, err := h.svc.ResumenDiario(c.Request.Context(), middleware.GetCaller(c), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
