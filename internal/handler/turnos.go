package handler

import (
	"net/http"
	"time"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/middleware"
	"hostalpos/internal/repository"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TurnosHandler struct{ svc service.TurnoService }

func NewTurnosHandler(svc service.TurnoService) *TurnosHandler { return &TurnosHandler{svc: svc} }

// Iniciar godoc
// @Summary Inicia un turno con caja inicial declarada
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.IniciarTurnoRequest true "Datos de apertura"
// @Success 201 {object} dto.TurnoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/turnos/iniciar [post]
func (h *TurnosHandler) Iniciar(c *gin.Context) {
	var req dto.IniciarTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Iniciar(c.Request.Context(), middleware.GetCaller(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra el turno activo con arqueo de efectivo
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarTurnoRequest true "Efectivo contado y sueldo"
// @Success 200 {object} dto.CierreTurnoResponse
// @Failure 403 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/turnos/cerrar [post]
func (h *TurnosHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), middleware.GetCaller(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Activo returns the single system-wide active shift.
func (h *TurnosHandler) Activo(c *gin.Context) {
	resp, err := h.svc.Activo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar returns shifts filtered by employee and date range.
func (h *TurnosHandler) Listar(c *gin.Context) {
	var f repository.TurnoFilter
	if v := c.Query("usuario_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("usuario_id invalido"))
			return
		}
		f.UsuarioID = &id
	}
	if v := c.Query("desde"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde invalido, se espera RFC3339"))
			return
		}
		f.Desde = &t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hasta invalido, se espera RFC3339"))
			return
		}
		f.Hasta = &t
	}
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetCaller(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimientos returns the full ledger of one shift, oldest first.
func (h *TurnosHandler) Movimientos(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
